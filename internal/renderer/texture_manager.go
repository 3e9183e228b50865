package renderer

import (
	"Moonrise/internal/logger"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ftrvxmtrx/tga"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	"go.uber.org/zap"
)

// Texture is a read-only handle to an uploaded image. It may be shared by any
// number of materials; the TextureManager owns its lifetime.
type Texture struct {
	ID     uint32
	Name   string
	Width  int
	Height int
}

type TextureOptions struct {
	Mipmaps     bool
	Anisotropic bool
}

// TextureUploader is the subset of a Backend the manager needs.
type TextureUploader interface {
	CreateTexture(img image.Image, opts TextureOptions) (uint32, error)
	DeleteTexture(id uint32)
}

// TextureStats provides debugging and profiling information
type TextureStats struct {
	TotalTextures  int
	CacheHits      int
	CacheMisses    int
	ActiveTextures int
}

// TextureManager manages texture uploading, caching, and lifecycle
type TextureManager struct {
	uploader        TextureUploader
	textureCache    map[string]*Texture // name -> texture
	textureRefCount map[uint32]int      // texture ID -> reference count
	mu              sync.RWMutex
	stats           TextureStats
	Options         TextureOptions
}

func NewTextureManager(uploader TextureUploader) *TextureManager {
	return &TextureManager{
		uploader:        uploader,
		textureCache:    make(map[string]*Texture),
		textureRefCount: make(map[uint32]int),
		Options:         TextureOptions{Mipmaps: true, Anisotropic: true},
	}
}

// Upload sends img to the GPU under name, or returns the cached texture.
// Either way the reference count is incremented.
func (tm *TextureManager) Upload(name string, img image.Image) (*Texture, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tex, exists := tm.textureCache[name]; exists {
		tm.textureRefCount[tex.ID]++
		tm.stats.CacheHits++

		logger.Log.Debug("Texture cache hit",
			zap.String("name", name),
			zap.Uint32("textureID", tex.ID),
			zap.Int("refCount", tm.textureRefCount[tex.ID]))

		return tex, nil
	}

	tm.stats.CacheMisses++

	id, err := tm.uploader.CreateTexture(img, tm.Options)
	if err != nil {
		return nil, fmt.Errorf("upload texture %s: %w", name, err)
	}

	b := img.Bounds()
	tex := &Texture{ID: id, Name: name, Width: b.Dx(), Height: b.Dy()}
	tm.textureCache[name] = tex
	tm.textureRefCount[id] = 1
	tm.stats.TotalTextures++
	tm.stats.ActiveTextures++

	logger.Log.Info("Texture uploaded",
		zap.String("name", name),
		zap.Uint32("textureID", id),
		zap.Int("width", tex.Width),
		zap.Int("height", tex.Height))

	return tex, nil
}

// AddReference increments the reference count for a texture
func (tm *TextureManager) AddReference(tex *Texture) {
	if tex == nil {
		return
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()

	if _, ok := tm.textureRefCount[tex.ID]; ok {
		tm.textureRefCount[tex.ID]++
	}
}

// Release decrements the reference count and frees the texture at zero.
func (tm *TextureManager) Release(tex *Texture) {
	if tex == nil {
		return
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()

	refCount, exists := tm.textureRefCount[tex.ID]
	if !exists {
		logger.Log.Warn("Attempted to release unknown texture",
			zap.Uint32("textureID", tex.ID))
		return
	}

	refCount--
	tm.textureRefCount[tex.ID] = refCount
	if refCount > 0 {
		return
	}

	tm.uploader.DeleteTexture(tex.ID)
	delete(tm.textureCache, tex.Name)
	delete(tm.textureRefCount, tex.ID)
	tm.stats.ActiveTextures--

	logger.Log.Info("Texture freed",
		zap.Uint32("textureID", tex.ID),
		zap.String("name", tex.Name))
}

func (tm *TextureManager) RefCount(tex *Texture) int {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.textureRefCount[tex.ID]
}

func (tm *TextureManager) GetStats() TextureStats {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	stats := tm.stats
	stats.ActiveTextures = len(tm.textureRefCount)
	return stats
}

func (tm *TextureManager) LogStats() {
	stats := tm.GetStats()
	logger.Log.Debug("Texture Manager Stats",
		zap.Int("totalTextures", stats.TotalTextures),
		zap.Int("activeTextures", stats.ActiveTextures),
		zap.Int("cacheHits", stats.CacheHits),
		zap.Int("cacheMisses", stats.CacheMisses))
}

// Clear frees every texture regardless of reference counts.
func (tm *TextureManager) Clear() {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	for id := range tm.textureRefCount {
		tm.uploader.DeleteTexture(id)
	}

	tm.textureCache = make(map[string]*Texture)
	tm.textureRefCount = make(map[uint32]int)
	tm.stats.ActiveTextures = 0
}

// ImageResult is delivered by LoadImageAsync once decoding finishes.
type ImageResult struct {
	Path  string
	Image image.Image
	Err   error
}

// LoadImageAsync decodes path on a separate goroutine. The returned channel
// receives exactly one result and is never closed before that. Decoding only
// touches the CPU; uploading stays with the caller's graphics thread.
func LoadImageAsync(path string, maxSize int) <-chan ImageResult {
	ch := make(chan ImageResult, 1)
	go func() {
		img, err := LoadImage(path, maxSize)
		ch <- ImageResult{Path: path, Image: img, Err: err}
	}()
	return ch
}

// LoadImage reads and decodes an image file, downscaling it so its longest edge
// is at most maxSize (0 keeps the original size).
func LoadImage(path string, maxSize int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := DecodeImage(f, path)
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	return FitImage(img, maxSize), nil
}

// DecodeImage decodes jpeg, png, webp and bmp data into RGBA, sniffing the
// format. TGA has no magic number, so it is chosen by the .tga extension of name
// and never registered with the image package.
func DecodeImage(r io.Reader, name string) (*image.RGBA, string, error) {
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		img, err := tga.Decode(r)
		if err != nil {
			return nil, "", err
		}
		return toRGBA(img), "tga", nil
	}

	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", err
	}
	return toRGBA(img), format, nil
}

// FitImage scales img down with Catmull-Rom filtering when it exceeds maxSize.
func FitImage(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	if maxSize <= 0 || (b.Dx() <= maxSize && b.Dy() <= maxSize) {
		return img
	}

	w, h := maxSize, maxSize
	if b.Dx() > b.Dy() {
		h = max(1, b.Dy()*maxSize/b.Dx())
	} else {
		w = max(1, b.Dx()*maxSize/b.Dy())
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
