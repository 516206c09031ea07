package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/melvink/api/internal/models"
)

// ContentService serves the hand-authored site content documents from a
// directory on disk. Files are read per request so edits show up without a
// restart.
type ContentService struct {
	dir string
}

func NewContentService(dir string) *ContentService {
	return &ContentService{dir: dir}
}

type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type TattooTypeOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// BookingContent is the copy shown around the booking form.
type BookingContent struct {
	Procedure      []string           `json:"procedure"`
	AdditionalInfo []string           `json:"additionalInfo"`
	TattooTypes    []TattooTypeOption `json:"tattooTypes"`
	BodyParts      []string           `json:"bodyParts"`
}

type designsDocument struct {
	Designs []models.Design `json:"designs"`
}

type faqDocument struct {
	FAQs []FAQ `json:"faqs"`
}

func (cs *ContentService) readDocument(name string, out interface{}) error {
	data, err := os.ReadFile(filepath.Join(cs.dir, name))
	if err != nil {
		return fmt.Errorf("failed to read content file %s: %v", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse content file %s: %v", name, err)
	}
	return nil
}

// SeedDesigns returns the curated design list from designs.json. These are
// display seeds, separate from the persisted design records.
func (cs *ContentService) SeedDesigns() ([]models.Design, error) {
	var doc designsDocument
	if err := cs.readDocument("designs.json", &doc); err != nil {
		return nil, err
	}
	if doc.Designs == nil {
		doc.Designs = []models.Design{}
	}
	return doc.Designs, nil
}

func (cs *ContentService) FAQs() ([]FAQ, error) {
	var doc faqDocument
	if err := cs.readDocument("faq.json", &doc); err != nil {
		return nil, err
	}
	if doc.FAQs == nil {
		doc.FAQs = []FAQ{}
	}
	return doc.FAQs, nil
}

// BookingPageContent loads booking.json. Missing optional arrays come back
// empty, not nil, so the JSON response always carries the keys.
func (cs *ContentService) BookingPageContent() (*BookingContent, error) {
	var doc BookingContent
	if err := cs.readDocument("booking.json", &doc); err != nil {
		return nil, err
	}
	if doc.Procedure == nil {
		doc.Procedure = []string{}
	}
	if doc.AdditionalInfo == nil {
		doc.AdditionalInfo = []string{}
	}
	if doc.TattooTypes == nil {
		doc.TattooTypes = []TattooTypeOption{}
	}
	if doc.BodyParts == nil {
		doc.BodyParts = []string{}
	}
	return &doc, nil
}
