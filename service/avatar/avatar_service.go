package avatar

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// AvatarService normalizes uploaded profile images: decode, center-crop to a
// square, resize, encode as webp under <mediaDir>/avatars.
type AvatarService struct {
	mediaDir string
	size     int
}

const defaultSize = 256

func NewAvatarService(mediaDir string) *AvatarService {
	return &AvatarService{mediaDir: mediaDir, size: defaultSize}
}

// Save processes the uploaded image and returns the stored path relative to
// the media directory root. The file is written to a .tmp name first and
// renamed so a crashed upload never leaves a partial avatar visible.
func (s *AvatarService) Save(r io.Reader, userID uint) (string, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decode avatar: %w", err)
	}

	img = imaging.Fill(img, s.size, s.size, imaging.Center, imaging.Lanczos)

	dir := filepath.Join(s.mediaDir, "avatars")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("media dir: %w", err)
	}

	name := fmt.Sprintf("%d.webp", userID)
	final := filepath.Join(dir, name)
	tmp := final + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("create avatar file: %w", err)
	}
	if err := webp.Encode(f, img, &webp.Options{Quality: 85}); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("encode webp: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return "", err
	}
	return filepath.ToSlash(filepath.Join("avatars", name)), nil
}
