package mirror

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"

	"go.uber.org/zap"

	"user-directory-api/internal/domain/user"
)

// LogFile mirrors the record set to a text file, one JSON object per line,
// rewritten in full after every mutation. Loading tolerates damage: a line
// that does not parse is skipped and logged, and a missing file starts the
// directory empty instead of refusing to boot.
type LogFile struct {
	path string
	log  *zap.Logger
}

func NewLogFile(path string, logger *zap.Logger) *LogFile {
	return &LogFile{path: path, log: logger}
}

func (m *LogFile) Load(_ context.Context) ([]user.User, error) {
	f, err := os.Open(m.path)
	if err != nil {
		if !os.IsNotExist(err) {
			m.log.Warn("user log unreadable, starting empty",
				zap.String("path", m.path), zap.Error(err))
		}
		return nil, nil
	}
	defer f.Close()

	var records []user.User
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		b := bytes.TrimSpace(sc.Bytes())
		if len(b) == 0 {
			continue
		}
		var u user.User
		if err := json.Unmarshal(b, &u); err != nil {
			m.log.Warn("skipping malformed user log line",
				zap.String("path", m.path), zap.Int("line", line), zap.Error(err))
			continue
		}
		records = append(records, u)
	}
	if err := sc.Err(); err != nil {
		// Keep whatever parsed before the read broke off.
		m.log.Warn("user log read interrupted",
			zap.String("path", m.path), zap.Int("lines_read", line), zap.Error(err))
	}
	return records, nil
}

func (m *LogFile) Rewrite(_ context.Context, records []user.User) error {
	f, err := os.Create(m.path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	for i := range records {
		if err := enc.Encode(records[i]); err != nil {
			f.Close()
			return err
		}
	}
	return f.Close()
}
