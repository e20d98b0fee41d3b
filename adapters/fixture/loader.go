package fixture

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

//go:embed portfolio.json
var bundled []byte

// Load decodes the portfolio document from path, or from the bundled
// fixture when path is empty.
func Load(path string, log logger.Logger) (portfolio.Document, error) {
	raw := bundled
	source := "bundled"
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return portfolio.Document{}, fmt.Errorf("read fixture %s: %w", path, err)
		}
		raw = b
		source = path
	}

	doc, err := Decode(raw)
	if err != nil {
		return portfolio.Document{}, fmt.Errorf("decode fixture %s: %w", source, err)
	}

	log.Info("Portfolio fixture loaded",
		zap.String("source", source),
		zap.Int("experiences", len(doc.Experiences)),
		zap.Int("projects", len(doc.Projects)),
		zap.Int("education", len(doc.Education)),
		zap.Int("certifications", len(doc.Certifications)),
	)
	return doc, nil
}

func Decode(raw []byte) (portfolio.Document, error) {
	var doc portfolio.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return portfolio.Document{}, err
	}
	doc.Normalize()
	return doc, nil
}
