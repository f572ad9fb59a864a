package parser

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type BBox struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

type Word struct {
	ID         string  `json:"id"`
	Text       string  `json:"text"`
	BBox       BBox    `json:"bbox"`
	Confidence float64 `json:"confidence"`
	LineID     string  `json:"line_id"`
}

type Line struct {
	ID    string `json:"id"`
	BBox  BBox   `json:"bbox"`
	Words []Word `json:"words"`
}

type XMLElement struct {
	XMLName  xml.Name
	Attrs    []xml.Attr   `xml:",any,attr"`
	Content  string       `xml:",chardata"`
	Children []XMLElement `xml:",any"`
}

var (
	bboxRegex = regexp.MustCompile(`bbox\s+(\d+)\s+(\d+)\s+(\d+)\s+(\d+)`)
	confRegex = regexp.MustCompile(`x_wconf\s+(\d+(?:\.\d+)?)`)
)

var lineClasses = []string{"ocr_line", "ocr_caption", "ocr_textfloat", "ocr_header"}

func ParseHOCRWords(hocrXML string) ([]Word, error) {
	lines, err := ParseHOCRLines(hocrXML)
	if err != nil {
		return nil, err
	}
	var words []Word
	for _, line := range lines {
		words = append(words, line.Words...)
	}
	return words, nil
}

// ParseHOCRLines returns the text lines of an hOCR document in document
// order. Words outside any line element are grouped under an unnamed line.
func ParseHOCRLines(hocrXML string) ([]Line, error) {
	var doc XMLElement

	decoder := xml.NewDecoder(strings.NewReader(hocrXML))
	decoder.Strict = false
	decoder.Entity = xml.HTMLEntity
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	var lines []Line
	orphan := Line{}
	traverseElements(doc, nil, &lines, &orphan)
	if len(orphan.Words) > 0 {
		lines = append(lines, orphan)
	}
	return lines, nil
}

func traverseElements(element XMLElement, current *Line, lines *[]Line, orphan *Line) {
	if hasClass(element, lineClasses...) {
		line := Line{ID: attr(element, "id")}
		line.BBox, _ = parseBBox(attr(element, "title"))
		for _, child := range element.Children {
			traverseElements(child, &line, lines, orphan)
		}
		*lines = append(*lines, line)
		return
	}

	if hasClass(element, "ocrx_word") {
		word, err := parseWordElement(element)
		if err == nil && word.ID != "" {
			if current != nil {
				word.LineID = current.ID
				current.Words = append(current.Words, word)
			} else {
				orphan.Words = append(orphan.Words, word)
			}
		}
		return
	}

	for _, child := range element.Children {
		traverseElements(child, current, lines, orphan)
	}
}

func hasClass(element XMLElement, classes ...string) bool {
	for _, field := range strings.Fields(attr(element, "class")) {
		for _, c := range classes {
			if field == c {
				return true
			}
		}
	}
	return false
}

func attr(element XMLElement, name string) string {
	for _, a := range element.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func parseWordElement(element XMLElement) (Word, error) {
	word := Word{ID: attr(element, "id")}

	title := attr(element, "title")
	bbox, err := parseBBox(title)
	if err != nil {
		return word, fmt.Errorf("failed to parse title attribute: %w", err)
	}
	word.BBox = bbox

	if matches := confRegex.FindStringSubmatch(title); len(matches) == 2 {
		if word.Confidence, err = strconv.ParseFloat(matches[1], 64); err != nil {
			return word, fmt.Errorf("invalid confidence: %w", err)
		}
	}

	word.Text = strings.TrimSpace(collectText(element))
	return word, nil
}

// collectText gathers character data of the element and its descendants,
// since engines wrap word text in <strong> or <em>.
func collectText(element XMLElement) string {
	var sb strings.Builder
	sb.WriteString(element.Content)
	for _, child := range element.Children {
		sb.WriteString(collectText(child))
	}
	return sb.String()
}

func parseBBox(title string) (BBox, error) {
	var b BBox
	matches := bboxRegex.FindStringSubmatch(title)
	if len(matches) != 5 {
		return b, nil
	}
	var err error
	if b.X1, err = strconv.Atoi(matches[1]); err != nil {
		return b, fmt.Errorf("invalid bbox x1: %w", err)
	}
	if b.Y1, err = strconv.Atoi(matches[2]); err != nil {
		return b, fmt.Errorf("invalid bbox y1: %w", err)
	}
	if b.X2, err = strconv.Atoi(matches[3]); err != nil {
		return b, fmt.Errorf("invalid bbox x2: %w", err)
	}
	if b.Y2, err = strconv.Atoi(matches[4]); err != nil {
		return b, fmt.Errorf("invalid bbox y2: %w", err)
	}
	return b, nil
}

// MeanConfidence averages x_wconf over words, on a 0-100 scale. It is nil
// when there are no words.
func MeanConfidence(words []Word) *float64 {
	if len(words) == 0 {
		return nil
	}
	var sum float64
	for _, w := range words {
		sum += w.Confidence
	}
	mean := sum / float64(len(words))
	return &mean
}
