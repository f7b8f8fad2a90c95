package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
)

// Local keeps uploaded photos under <root>/<telegram_id>/<order_id>.
type Local struct {
	root string
}

func NewLocal(root string) *Local {
	return &Local{root: root}
}

func (l *Local) OrderDir(telegramID int64, orderID string) string {
	return filepath.Join(l.root, strconv.FormatInt(telegramID, 10), orderID)
}

// Delete removes the order directory. A missing directory is not an error.
func (l *Local) Delete(ctx context.Context, telegramID int64, orderID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if orderID == "" || orderID != filepath.Base(orderID) || orderID == "." || orderID == ".." {
		return fmt.Errorf("invalid order id %q", orderID)
	}

	dir := l.OrderDir(telegramID, orderID)
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		zap.L().Debug("order files already removed", zap.String("dir", dir))
		return nil
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove %s: %w", dir, err)
	}
	zap.L().Info("order files removed", zap.String("dir", dir))
	return nil
}
