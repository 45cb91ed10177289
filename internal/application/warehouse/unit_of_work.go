package warehouse

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/warehouse-manager/internal/domain"
	"github.com/jhoicas/warehouse-manager/internal/domain/repository"
	"github.com/jhoicas/warehouse-manager/pkg/logger"
)

// withinUnitOfWork abre una unidad de trabajo, ejecuta fn y hace Commit si fn termina bien.
// Si fn falla se hace Rollback (una vez, best effort), se registra el error y se devuelve sin traducir.
// Si fn entra en pánico también se hace Rollback y el pánico se relanza.
func withinUnitOfWork(ctx context.Context, uow repository.UnitOfWork, log *logger.Logger, op string, fn func(ctx context.Context) error) (err error) {
	txCtx, err := uow.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin unit of work: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := uow.Rollback(txCtx); rbErr != nil {
			log.Error().Err(rbErr).Str("op", op).Msg("rollback fallido")
		}
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("op", op).Msg("operación revertida por pánico")
			panic(r)
		}
		if domain.IsNotFound(err) || errors.Is(err, domain.ErrProductInUse) {
			log.Warn().Err(err).Str("op", op).Msg("operación revertida")
		} else {
			log.Error().Err(err).Str("op", op).Msg("operación revertida")
		}
	}()

	if err = fn(txCtx); err != nil {
		return err
	}

	committed = true
	return uow.Commit(txCtx)
}
