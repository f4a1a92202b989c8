package commands

import (
	"context"
	"fmt"
	"strings"

	domainerrors "simpleq/contexts/community-experience/user-content-service/domain/errors"
	"simpleq/contexts/community-experience/user-content-service/ports"
)

func screenContent(ctx context.Context, screener ports.ContentScreener, texts ...string) error {
	if screener == nil {
		return nil
	}
	matches, err := screener.ScreenText(ctx, texts...)
	if err != nil {
		return fmt.Errorf("%w: screen content: %w", domainerrors.ErrDependencyFailed, err)
	}
	if len(matches) > 0 {
		return fmt.Errorf("%w: %s", domainerrors.ErrContentBlacklisted, strings.Join(matches, ", "))
	}
	return nil
}
