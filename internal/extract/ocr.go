package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"time"
)

// OCR recognizes text on rasterized PDF pages using the tesseract and
// pdftoppm binaries.
type OCR struct {
	Lang        string        // tesseract language spec
	DPI         int           // rasterization resolution
	PageTimeout time.Duration // per-page recognition budget
}

// NewOCR returns an OCR runner configured for English plus Gujarati at
// 200 DPI
func NewOCR() *OCR {
	return &OCR{Lang: "eng+guj", DPI: 200, PageTimeout: 20 * time.Second}
}

var pageNumberRe = regexp.MustCompile(`-(\d+)\.png$`)

// ExtractPDF rasterizes every page of the PDF at path and runs
// recognition on each image in page order. A page that fails to
// recognize contributes an empty string; only a failure to rasterize at
// all is an error.
func (o *OCR) ExtractPDF(ctx context.Context, path string) (string, error) {
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		return "", errors.New("pdftoppm not found in PATH")
	}
	if _, err := exec.LookPath("tesseract"); err != nil {
		return "", errors.New("tesseract not found in PATH")
	}

	tmpDir, err := os.MkdirTemp("", "quizbot-ocr-")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(tmpDir)

	prefix := filepath.Join(tmpDir, "page")
	cmd := exec.CommandContext(ctx, "pdftoppm", "-r", strconv.Itoa(o.DPI), "-png", path, prefix)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("pdftoppm failed: %s", stderr.String())
	}

	images, err := filepath.Glob(prefix + "-*.png")
	if err != nil || len(images) == 0 {
		return "", errors.New("no pages rasterized")
	}
	sortByPageNumber(images)

	var sb bytes.Buffer
	for _, img := range images {
		text, err := o.recognize(ctx, img)
		if err != nil {
			log.Printf("OCR failed for %s: %v", img, err)
			continue
		}
		sb.WriteString(text)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// recognize runs tesseract on a single page image
func (o *OCR) recognize(ctx context.Context, imgPath string) (string, error) {
	if o.PageTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.PageTimeout)
		defer cancel()
	}

	args := []string{imgPath, "stdout"}
	if o.Lang != "" {
		args = append(args, "-l", o.Lang)
	}
	cmd := exec.CommandContext(ctx, "tesseract", args...)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", errors.New(stderr.String())
	}
	return out.String(), nil
}

// sortByPageNumber orders pdftoppm output numerically, since "page-10"
// sorts before "page-2" lexically
func sortByPageNumber(images []string) {
	sort.Slice(images, func(i, j int) bool {
		return pageNumber(images[i]) < pageNumber(images[j])
	})
}

func pageNumber(path string) int {
	m := pageNumberRe.FindStringSubmatch(path)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}
