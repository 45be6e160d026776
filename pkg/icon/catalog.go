// Package icon defines the closed set of icon names and the markup behind
// each of them.
//
// Every icon is authored as a small SVG whose colored elements carry the
// semantic color classes from package graphics, so a single asset serves
// both inline rendering (colors from CSS) and data URI rendering (colors
// substituted into the markup).
package icon

import (
	"encoding/json"

	"github.com/tidwall/pretty"
	"go.trai.ch/zerr"

	"github.com/hrko/streamdeck-gridicon/internal/errs"
)

// Name identifies one icon of the catalog.
type Name string

const (
	Download                   Name = "download"
	Edit                       Name = "edit"
	Video                      Name = "video"
	InfoCircle                 Name = "info-circle"
	ExclamationCircle          Name = "exclamation-circle"
	PNG                        Name = "png"
	Minimize                   Name = "minimize"
	Expand                     Name = "expand"
	Print                      Name = "print"
	SortAlphabeticalAscending  Name = "sort-alphabetical-ascending"
	SortAlphabeticalDescending Name = "sort-alphabetical-descending"
	SortAlphabeticalUnsorted   Name = "sort-alphabetical-unsorted"
	SortNumericalAscending     Name = "sort-numerical-ascending"
	SortNumericalDescending    Name = "sort-numerical-descending"
	SortNumericalUnsorted      Name = "sort-numerical-unsorted"
	FilterInactive             Name = "filter-inactive"
	FilterActive               Name = "filter-active"
	ChevronUp                  Name = "chevron-up"
	ChevronDown                Name = "chevron-down"
	ChevronRight               Name = "chevron-right"
	ChevronLeft                Name = "chevron-left"
	ChevronCircleUp            Name = "chevron-circle-up"
	ChevronCircleDown          Name = "chevron-circle-down"
	ChevronCircleRight         Name = "chevron-circle-right"
	ChevronCircleLeft          Name = "chevron-circle-left"
	QuestionCircle             Name = "question-circle"
	XLS                        Name = "xls"
	CSV                        Name = "csv"
	BinCircle                  Name = "bin-circle"
	Bin                        Name = "bin"
	PDF                        Name = "pdf"
	PersonSuit                 Name = "person-suit"
	Cross                      Name = "cross"
	GridView                   Name = "grid-view"
	ListView                   Name = "list-view"
	Compass                    Name = "compass"
	AllData                    Name = "all-data"
	SelectedData               Name = "selected-data"
	ArrowCurveRight            Name = "arrow-curve-right"
	AddFolder                  Name = "add-folder"
	Weight                     Name = "weight"
	Folder                     Name = "folder"
	Save                       Name = "save"
	SaveAs                     Name = "save-as"
	TickCircle                 Name = "tick-circle"
	NewWindow                  Name = "new-window"
	BurgerMenu                 Name = "burger-menu"
	Email                      Name = "email"
	Calendar                   Name = "calendar"
	Play                       Name = "play"
	Zip                        Name = "zip"
	FolderTools                Name = "folder-tools"
	TXT                        Name = "txt"
	ShareLink                  Name = "share-link"
	LinkChain                  Name = "link-chain"
	Sliders                    Name = "sliders"
)

// Default is the icon a widget shows when the host does not pick one.
const Default = InfoCircle

var names = []Name{
	Download,
	Edit,
	Video,
	InfoCircle,
	ExclamationCircle,
	PNG,
	Minimize,
	Expand,
	Print,
	SortAlphabeticalAscending,
	SortAlphabeticalDescending,
	SortAlphabeticalUnsorted,
	SortNumericalAscending,
	SortNumericalDescending,
	SortNumericalUnsorted,
	FilterInactive,
	FilterActive,
	ChevronUp,
	ChevronDown,
	ChevronRight,
	ChevronLeft,
	ChevronCircleUp,
	ChevronCircleDown,
	ChevronCircleRight,
	ChevronCircleLeft,
	QuestionCircle,
	XLS,
	CSV,
	BinCircle,
	Bin,
	PDF,
	PersonSuit,
	Cross,
	GridView,
	ListView,
	Compass,
	AllData,
	SelectedData,
	ArrowCurveRight,
	AddFolder,
	Weight,
	Folder,
	Save,
	SaveAs,
	TickCircle,
	NewWindow,
	BurgerMenu,
	Email,
	Calendar,
	Play,
	Zip,
	FolderTools,
	TXT,
	ShareLink,
	LinkChain,
	Sliders,
}

var known = func() map[Name]struct{} {
	m := make(map[Name]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}()

// Names returns a copy of the catalog in declaration order.
func Names() []Name {
	result := make([]Name, len(names))
	copy(result, names)
	return result
}

// Valid reports whether n is part of the catalog.
func (n Name) Valid() bool {
	_, ok := known[n]
	return ok
}

func (n Name) String() string {
	return string(n)
}

// Validate checks a candidate icon name. It fails for the empty string and
// for names outside the catalog.
func Validate(name string) (Name, error) {
	if name == "" {
		return "", errs.ErrEmptyIconName
	}
	n := Name(name)
	if !n.Valid() {
		return "", zerr.With(errs.ErrUnknownIconName, "icon", name)
	}
	return n, nil
}

// CatalogJSON renders the catalog as an indented JSON manifest for tooling.
func CatalogJSON() ([]byte, error) {
	manifest := struct {
		Default Name   `json:"default"`
		Icons   []Name `json:"icons"`
	}{
		Default: Default,
		Icons:   names,
	}
	b, err := json.Marshal(manifest)
	if err != nil {
		return nil, err
	}
	return pretty.Pretty(b), nil
}
