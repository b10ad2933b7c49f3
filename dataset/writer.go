// Package dataset materializes generated sequences on disk in the layout
// downstream training pipelines consume.
package dataset

import (
	"encoding/json"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"github.com/binvision/trashgen/sequence"
)

const (
	rootDirName  = "trash_dataset"
	imagesDir    = "images"
	newMasksDir  = "new_object_masks"
	top20Dir     = "top_20_masks"
	annotationFn = "annotations.json"

	jpegQuality = 90
)

// Writer lays out one dataset directory tree and writes frames into it.
type Writer struct {
	root   string
	logger golog.Logger
}

// NewWriter creates the dataset directory structure under outputDir.
func NewWriter(outputDir string, logger golog.Logger) (*Writer, error) {
	root := filepath.Join(outputDir, rootDirName)
	for _, dir := range []string{
		root,
		filepath.Join(root, imagesDir),
		filepath.Join(root, newMasksDir),
		filepath.Join(root, top20Dir),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "cannot create dataset dir %q", dir)
		}
	}
	return &Writer{root: root, logger: logger}, nil
}

// Root returns the dataset root directory.
func (w *Writer) Root() string {
	return w.root
}

// Refs returns the dataset-relative image and mask paths for a frame. The
// image ref doubles as the frame's key in annotations.json.
func (w *Writer) Refs(f *sequence.Frame) (imageRef, newMaskRef, topMaskRef string) {
	return f.Name + ".jpg",
		filepath.Join(newMasksDir, f.Name+".png"),
		filepath.Join(top20Dir, f.Name+".png")
}

// WriteFrame writes the frame's RGB image as JPEG and both masks as
// single-channel PNGs.
func (w *Writer) WriteFrame(f *sequence.Frame) error {
	imageRef, newRef, topRef := w.Refs(f)

	if err := w.writeJPEG(filepath.Join(w.root, imagesDir, filepath.Base(imageRef)), f); err != nil {
		return err
	}
	if err := writePNG(filepath.Join(w.root, filepath.FromSlash(newRef)), f.NewObjectMask); err != nil {
		return err
	}
	return writePNG(filepath.Join(w.root, filepath.FromSlash(topRef)), f.Top20Mask)
}

func (w *Writer) writeJPEG(path string, f *sequence.Frame) error {
	out, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "cannot create frame image")
	}
	defer out.Close()
	return jpeg.Encode(out, f.Image, &jpeg.Options{Quality: jpegQuality})
}

func writePNG(path string, img *image.Gray) error {
	out, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "cannot create mask image")
	}
	defer out.Close()
	return png.Encode(out, img)
}

// WriteAnnotations serializes the combined annotation set at the dataset
// root.
func (w *Writer) WriteAnnotations(set *sequence.AnnotationSet) error {
	out, err := os.Create(filepath.Join(w.root, annotationFn))
	if err != nil {
		return errors.Wrap(err, "cannot create annotations file")
	}
	defer out.Close()
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(set)
}
