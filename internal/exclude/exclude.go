// Package exclude classifies transactions as regular or special-purpose.
package exclude

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/kbirkholm/kollekt/internal/common"
	"github.com/kbirkholm/kollekt/internal/model"
)

// Tag marks transactions whose message contains any exclusion keyword.
// Classification happens per ExternalID, not per row: a fee row with no
// message of its own inherits exclusion from its sibling payment.
func Tag(txns []model.Transaction, keywords []string) {
	normalized := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if n := model.NormalizeText(kw); n != "" {
			normalized = append(normalized, n)
		}
	}
	if len(normalized) == 0 {
		return
	}

	excluded := make(map[string]struct{})
	for i := range txns {
		message := model.NormalizeText(txns[i].Message)
		if message == "" {
			continue
		}
		for _, kw := range normalized {
			if strings.Contains(message, kw) {
				excluded[txns[i].ExternalID] = struct{}{}
				break
			}
		}
	}

	for i := range txns {
		_, hit := excluded[txns[i].ExternalID]
		txns[i].Excluded = hit
	}
}

// LoadKeywords reads the exclusion keyword list, one keyword per line. A
// missing file is reported and yields an empty list; the run continues.
func LoadKeywords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Warn("exclusion keyword file not found, continuing with none", "path", path)
			return nil, nil
		}
		return nil, fmt.Errorf("opening exclusion keywords: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("closing exclusion keyword file", "error", cerr)
		}
	}()

	var keywords []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			keywords = append(keywords, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading exclusion keywords: %v", common.ErrMalformedRecord, err)
	}
	return keywords, nil
}
