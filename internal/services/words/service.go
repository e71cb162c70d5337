package words

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"github.com/forcadev/forca-online/internal/dependencies/random"
	"github.com/forcadev/forca-online/internal/model"
)

//go:embed words.yaml
var defaultCatalog embed.FS

// Service provides the word lists used when a room picks a shared word.
// Words are normalized to uppercase at load time.
type Service struct {
	random  random.Random
	byCat   map[string][]string
	catList []string
}

// New loads the embedded catalog
func New(rnd random.Random) (*Service, error) {
	raw, err := defaultCatalog.ReadFile("words.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded word catalog: %w", err)
	}
	return NewFromYAML(rnd, raw)
}

// NewFromYAML builds a service from raw yaml mapping category -> word list
func NewFromYAML(rnd random.Random, raw []byte) (*Service, error) {
	var parsed map[string][]string
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse word catalog: %w", err)
	}

	byCat := make(map[string][]string, len(parsed))
	catList := make([]string, 0, len(parsed))
	for cat, list := range parsed {
		upper := make([]string, 0, len(list))
		for _, w := range list {
			w = strings.ToUpper(strings.TrimSpace(w))
			if w != "" {
				upper = append(upper, w)
			}
		}
		if len(upper) == 0 {
			continue
		}
		byCat[strings.ToLower(cat)] = upper
		catList = append(catList, strings.ToLower(cat))
	}
	sort.Strings(catList)

	return &Service{
		random:  rnd,
		byCat:   byCat,
		catList: catList,
	}, nil
}

// RandomWord picks a word from the given category, uppercase
func (s *Service) RandomWord(category string) (string, error) {
	list, ok := s.byCat[strings.ToLower(category)]
	if !ok {
		return "", model.ErrUnknownCategory
	}
	return list[s.random.Intn(len(list))], nil
}

// HasCategory reports whether the category exists in the catalog
func (s *Service) HasCategory(category string) bool {
	_, ok := s.byCat[strings.ToLower(category)]
	return ok
}

// Categories returns the known category names, sorted
func (s *Service) Categories() []string {
	return s.catList
}

// WordCount returns the number of words in a category, 0 if unknown
func (s *Service) WordCount(category string) int {
	return len(s.byCat[strings.ToLower(category)])
}

// Interface for dependency injection
type ServiceInterface interface {
	RandomWord(category string) (string, error)
	HasCategory(category string) bool
	Categories() []string
	WordCount(category string) int
}

var _ ServiceInterface = (*Service)(nil)
