package sequence

import "strconv"

// RankSlotNote is embedded in every annotation set so downstream consumers
// cannot mistake mask values for persistent object IDs.
const RankSlotNote = "top_20_mask values are per-frame salience rank slots (1-20), " +
	"not persistent object identities; the same value may mean a different " +
	"category in the next frame"

// ImageAnnotation is the per-frame annotation record.
type ImageAnnotation struct {
	NewObjMask string  `json:"new_obj_mask"`
	Top20Mask  string  `json:"top_20_mask"`
	PrevImage  *string `json:"prev_image"`
	NextImage  *string `json:"next_image"`
	// Categories maps the luminosity values used in this frame's top-20
	// mask (as decimal strings "1".."20") to their classes.
	Categories map[string]Category `json:"categories"`
}

// AnnotationSet is the JSON document the dataset writer serializes.
type AnnotationSet struct {
	Note   string                     `json:"note"`
	Images map[string]ImageAnnotation `json:"images"`
}

// NewAnnotationSet returns an empty set carrying the rank-slot warning.
func NewAnnotationSet() *AnnotationSet {
	return &AnnotationSet{Note: RankSlotNote, Images: map[string]ImageAnnotation{}}
}

// FrameRefs resolves a frame to the dataset-relative paths of its image and
// masks. The image ref keys the annotation entry and is what prev/next links
// point at.
type FrameRefs func(f *Frame) (imageRef, newMaskRef, topMaskRef string)

// AddSequence appends one sequence's frames, wiring the prev/next links
// through the resolved image refs.
func (s *AnnotationSet) AddSequence(frames []*Frame, refs FrameRefs) {
	refByID := make(map[string]string, len(frames))
	for _, f := range frames {
		imageRef, _, _ := refs(f)
		refByID[f.ImageID] = imageRef
	}
	for _, f := range frames {
		imageRef, newRef, topRef := refs(f)
		ann := ImageAnnotation{
			NewObjMask: newRef,
			Top20Mask:  topRef,
			Categories: map[string]Category{},
		}
		for v, cat := range f.Categories {
			ann.Categories[strconv.Itoa(int(v))] = cat
		}
		if f.PrevImageID != "" {
			prev := refByID[f.PrevImageID]
			ann.PrevImage = &prev
		}
		if f.NextImageID != "" {
			next := refByID[f.NextImageID]
			ann.NextImage = &next
		}
		s.Images[imageRef] = ann
	}
}
