// Package marker decides how each plotted record is drawn: an image asset
// looked up by the record's identity key, or a plain point when no usable
// asset exists, plus the cleaned text label shown under it.
package marker

import (
	"image"
	"image/draw"
	_ "image/png"
	"io/fs"
	"math"
	"strings"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/ajbenz18/nfl-analysis/src/dataset"
	"github.com/ajbenz18/nfl-analysis/src/logging"
)

var log = logging.For("marker")

// AssetExt is the file extension assets are stored under.
const AssetExt = ".png"

// CleanLabel drops a leading qualifier word: "Dallas Cowboys" becomes
// "Cowboys" while a single token such as "DAL" is kept as is.
func CleanLabel(raw string) string {
	toks := strings.Fields(raw)
	switch len(toks) {
	case 0:
		return ""
	case 1:
		return raw
	default:
		return strings.Join(toks[1:], " ")
	}
}

// Resolver loads marker images from an asset store. It keeps no state
// between calls.
type Resolver struct {
	Store fs.FS
	// Size is the target length of the shorter image side, in pixels.
	Size int
}

// Resolve opens "<key>.png" from the store and returns it scaled so its
// shorter side equals r.Size. ok is false when the key cannot name a file,
// the file is absent, or it does not decode.
func (r Resolver) Resolve(key string) (img *image.RGBA, ok bool) {
	if r.Store == nil {
		return nil, false
	}
	key = strings.TrimSpace(key)
	name := key + AssetExt
	if key == "" || strings.ContainsAny(key, `/\`) || !fs.ValidPath(name) {
		log.Debugf("no asset for %q: invalid key", key)
		return nil, false
	}
	f, err := r.Store.Open(name)
	if err != nil {
		log.Debugf("no asset for %q: %v", key, err)
		return nil, false
	}
	defer f.Close()

	src, format, err := image.Decode(f)
	if err != nil {
		log.Debugf("asset %s unreadable: %v", name, err)
		return nil, false
	}
	log.Debugf("asset %s decoded as %s %v", name, format, src.Bounds().Size())
	return Scale(src, r.Size), true
}

// Scale resizes src so its shorter side is size pixels, keeping the aspect
// ratio, with Catmull-Rom resampling. A non-positive size only converts src
// to RGBA.
func Scale(src image.Image, size int) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if size <= 0 || w == 0 || h == 0 {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
		return dst
	}
	var nw, nh int
	if w <= h {
		nw = size
		nh = int(math.Round(float64(h) * float64(size) / float64(w)))
	} else {
		nh = size
		nw = int(math.Round(float64(w) * float64(size) / float64(h)))
	}
	dst := image.NewRGBA(image.Rect(0, 0, max(nw, 1), max(nh, 1)))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}

// Marker is one record ready to draw.
type Marker struct {
	X, Y  float64
	Key   string
	Label string
	// Image is nil when no asset resolved; the renderer then draws a point.
	Image *image.RGBA
}

// Options names the columns Build reads.
type Options struct {
	XCol, YCol string
	LabelCol   string
	// IdentityCol keys the asset lookup; when the dataset lacks it the raw
	// label text is used instead.
	IdentityCol string
}

// Build creates one Marker per record that has both coordinates.
func Build(ds *dataset.Dataset, res Resolver, opts Options) []Marker {
	useIdentity := opts.IdentityCol != "" && ds.HasColumn(opts.IdentityCol)
	out := make([]Marker, 0, ds.Len())
	resolved := 0
	for _, rec := range ds.Records {
		x, okx := rec.Get(opts.XCol).Float()
		y, oky := rec.Get(opts.YCol).Float()
		if !okx || !oky {
			continue
		}
		raw := rec.Get(opts.LabelCol).String()
		key := raw
		if useIdentity {
			key = rec.Get(opts.IdentityCol).String()
		}
		m := Marker{X: x, Y: y, Key: key, Label: CleanLabel(raw)}
		if img, ok := res.Resolve(key); ok {
			m.Image = img
			resolved++
		}
		out = append(out, m)
	}
	log.Debugf("%s: %d markers, %d with assets", ds.Name, len(out), resolved)
	return out
}
