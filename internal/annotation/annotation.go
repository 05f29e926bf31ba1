// Package annotation locates and parses per-image annotation sidecar files.
//
// Two dialects are supported: YOLO (one .txt per image, class indices
// resolved against a companion classes.txt) and Pascal VOC (one .xml per
// image with embedded size, labels and pixel boxes). Both parse into the
// same normalized centered box representation. Missing or malformed input
// is steady state during dataset editing, so parsing degrades to an empty
// box list instead of returning errors.
package annotation

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/velikanov/thumbgrid/internal/domain"
)

// Match is a located annotation file for one image.
type Match struct {
	Path      string
	Format    domain.AnnotationFormat
	ClassList string // YOLO only, empty if no classes.txt was found
}

const classListName = "classes.txt"

// Locate finds the annotation file for imagePath. The image's own directory
// is searched before altDir (if distinct and non-empty), and within each
// directory YOLO wins over VOC. For YOLO, classes.txt is looked up beside
// the matched file first, then beside the image.
func Locate(imagePath, altDir string) (Match, bool) {
	base := strings.TrimSuffix(filepath.Base(imagePath), filepath.Ext(imagePath))
	imgDir := filepath.Dir(imagePath)

	searchDirs := []string{imgDir}
	if altDir != "" && altDir != imgDir {
		searchDirs = append(searchDirs, altDir)
	}

	for _, dir := range searchDirs {
		txtPath := filepath.Join(dir, base+".txt")
		if !isFile(txtPath) {
			continue
		}
		classList := filepath.Join(dir, classListName)
		if !isFile(classList) {
			classList = filepath.Join(imgDir, classListName)
		}
		if !isFile(classList) {
			classList = ""
		}
		return Match{Path: txtPath, Format: domain.FormatYOLO, ClassList: classList}, true
	}

	for _, dir := range searchDirs {
		xmlPath := filepath.Join(dir, base+".xml")
		if isFile(xmlPath) {
			return Match{Path: xmlPath, Format: domain.FormatVOC}, true
		}
	}

	return Match{}, false
}

// Parse reads the located file into normalized boxes. Unknown formats and
// unreadable files yield an empty slice.
func Parse(m Match) []domain.AnnotationBox {
	switch m.Format {
	case domain.FormatYOLO:
		return parseYOLO(m.Path, m.ClassList)
	case domain.FormatVOC:
		return parseVOC(m.Path)
	default:
		return nil
	}
}

// Load is the Locate+Parse convenience used by the thumbnail producer.
func Load(imagePath, altDir string) []domain.AnnotationBox {
	m, ok := Locate(imagePath, altDir)
	if !ok {
		return nil
	}
	return Parse(m)
}

// Status derives the review status of an image from its on-disk
// annotations: no file or no boxes means no labels; a VOC file whose root
// carries verified="yes" means verified; anything else with boxes means
// labeled.
func Status(imagePath, altDir string) domain.AnnotationStatus {
	m, ok := Locate(imagePath, altDir)
	if !ok {
		return domain.StatusNoLabels
	}
	boxes := Parse(m)
	if len(boxes) == 0 {
		return domain.StatusNoLabels
	}
	if m.Format == domain.FormatVOC && vocVerified(m.Path) {
		return domain.StatusVerified
	}
	return domain.StatusHasLabels
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
