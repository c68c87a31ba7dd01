package http

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/stargate-service/internal/api/dto"
	"github.com/spec-kit/stargate-service/internal/observability"
	apperrors "github.com/spec-kit/stargate-service/pkg/util/errorutil"
)

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
// Failures of 500 and above are also written to audit.
func RegisterMiddlewares(app *fiber.App, logger, audit *zap.Logger, metrics *observability.Metrics, timeout time.Duration) {
	app.Use(observability.RequestLogger(logger, metrics))
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(errorHandlingMiddleware(logger, audit, metrics))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger, audit *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(fmt.Errorf("panic: %v", r))
			}
			if err != nil {
				domainErr := toDomainError(err)
				route, method := observability.RouteLabels(c)
				metrics.RecordError(route, method, domainErr.Code)

				if domainErr.HTTPStatus >= fiber.StatusInternalServerError {
					audit.Error(fmt.Sprintf("An error occurred while attempting to %s. Message: %s",
						operationOf(c, domainErr), domainErr.Message))
				} else {
					logger.Warn("request rejected",
						zap.String("path", c.Path()),
						zap.Int("status", domainErr.HTTPStatus),
						zap.String("message", domainErr.Message),
					)
				}

				err = c.Status(domainErr.HTTPStatus).JSON(dto.Fail(domainErr.HTTPStatus, domainErr.Message))
			}
		}()
		return c.Next()
	}
}

func toDomainError(err error) *apperrors.DomainError {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return apperrors.NewDomainError("HTTP_ERROR", fiberErr.Message, fiberErr.Code, nil)
	}
	return apperrors.ToDomainError(err)
}

func operationOf(c *fiber.Ctx, err *apperrors.DomainError) string {
	if err.Operation != "" {
		return err.Operation
	}
	return c.Method() + " " + c.Path()
}
