package config

import (
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/paths"
	toml "github.com/pelletier/go-toml/v2"
)

// Category is one repository subdirectory and the files it provides.
type Category struct {
	Name  string   `koanf:"category" toml:"category" json:"category"`
	Files []string `koanf:"files" toml:"files" json:"files"`
}

// Mapping is the ordered, immutable category -> filenames table. The zero
// value is an empty mapping.
type Mapping struct {
	categories []Category
}

// NewMapping validates categories and copies them into a Mapping.
// Category and file names must be single path elements, categories must be
// unique, and no file name may appear twice since each name is its own
// target in the home root.
func NewMapping(categories ...Category) (Mapping, error) {
	seenCategory := make(map[string]bool)
	seenFile := make(map[string]string)
	copied := make([]Category, 0, len(categories))

	for _, c := range categories {
		if err := paths.ValidateName("category", c.Name); err != nil {
			return Mapping{}, errors.Wrap(err, errors.ErrConfigInvalid, "invalid mapping")
		}
		if seenCategory[c.Name] {
			return Mapping{}, errors.Newf(errors.ErrConfigInvalid, "category %q listed twice", c.Name)
		}
		seenCategory[c.Name] = true

		files := make([]string, 0, len(c.Files))
		for _, f := range c.Files {
			if err := paths.ValidateName("file", f); err != nil {
				return Mapping{}, errors.Wrap(err, errors.ErrConfigInvalid, "invalid mapping")
			}
			if owner, ok := seenFile[f]; ok {
				return Mapping{}, errors.Newf(errors.ErrConfigInvalid,
					"link conflict: both %s and %s want to link %s", owner, c.Name, f)
			}
			seenFile[f] = c.Name
			files = append(files, f)
		}
		copied = append(copied, Category{Name: c.Name, Files: files})
	}

	return Mapping{categories: copied}, nil
}

// Categories returns a copy of the categories in order.
func (m Mapping) Categories() []Category {
	out := make([]Category, len(m.categories))
	for i, c := range m.categories {
		out[i] = Category{Name: c.Name, Files: append([]string(nil), c.Files...)}
	}
	return out
}

// Len is the total number of managed files.
func (m Mapping) Len() int {
	n := 0
	for _, c := range m.categories {
		n += len(c.Files)
	}
	return n
}

type mappingDocument struct {
	Mapping []Category `toml:"mapping"`
}

// MarshalTOML renders the mapping in the same shape as the defaults file.
func (m Mapping) MarshalTOML() ([]byte, error) {
	return toml.Marshal(mappingDocument{Mapping: m.Categories()})
}
