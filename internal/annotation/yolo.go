package annotation

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/wb-go/wbf/zlog"

	"github.com/velikanov/thumbgrid/internal/domain"
)

// parseYOLO reads a YOLO sidecar: one "<class_idx> <xc> <yc> <w> <h>" line
// per box, all coordinates already normalized. Malformed lines are skipped;
// a class index outside the class list synthesizes a "class_<idx>" label
// instead of failing the file.
func parseYOLO(path, classListPath string) []domain.AnnotationBox {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	classes := loadClassList(classListPath)

	var boxes []domain.AnnotationBox
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 5 {
			continue
		}

		idx, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		vals := make([]float64, 4)
		ok := true
		for i := 0; i < 4; i++ {
			vals[i], err = strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}

		label := fmt.Sprintf("class_%d", idx)
		if idx >= 0 && idx < len(classes) {
			label = classes[idx]
		}

		boxes = append(boxes, domain.AnnotationBox{
			Label:   label,
			XCenter: vals[0],
			YCenter: vals[1],
			Width:   vals[2],
			Height:  vals[3],
		})
	}
	if err := scanner.Err(); err != nil {
		zlog.Logger.Debug().Err(err).Str("path", path).Msg("yolo annotation read interrupted")
	}

	return boxes
}

// loadClassList reads one class name per non-empty line.
func loadClassList(path string) []string {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var classes []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if name := strings.TrimSpace(scanner.Text()); name != "" {
			classes = append(classes, name)
		}
	}
	return classes
}
