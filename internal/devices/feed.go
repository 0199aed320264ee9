package devices

import (
	"bufio"
	"context"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/SlimeOS/internal/shared/keycode"
)

// FeedKeys reads whitespace separated key names from r and taps each one
// into the matrix. A name prefixed with '+' is pressed and one prefixed
// with '-' is released. Unknown names are logged and skipped. It returns
// when r is exhausted or ctx is cancelled.
func (s *Simulator) FeedKeys(ctx context.Context, r io.Reader, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		word := scanner.Text()
		action := s.keys.Tap
		switch {
		case strings.HasPrefix(word, "+"):
			action, word = s.keys.Press, word[1:]
		case strings.HasPrefix(word, "-"):
			action, word = s.keys.Release, word[1:]
		}
		code, err := keycode.Parse(word)
		if err != nil {
			logger.Warn("Ignoring key", zap.String("input", scanner.Text()), zap.Error(err))
			continue
		}
		action(code)
	}
	return scanner.Err()
}
