package handlers

import (
	"context"
	"errors"
	"net"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/MisticalPy/solution-to-combat-burnout/internal/entity"
	"github.com/MisticalPy/solution-to-combat-burnout/internal/telegram/render"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity int

const (
	SeverityWarning ErrorSeverity = iota
	SeverityError
)

// HandlerError represents a structured error with user message and logging info
type HandlerError struct {
	Err         error
	UserMessage string
	LogMessage  string
	Severity    ErrorSeverity
}

// classifyHandlerError maps an error onto the message shown to the user
// and the severity it is logged with.
func classifyHandlerError(err error) *HandlerError {
	if err == nil {
		return &HandlerError{
			UserMessage: render.ErrGeneric,
			LogMessage:  "unknown error",
			Severity:    SeverityWarning,
		}
	}

	// Domain errors (non-critical)
	switch {
	case errors.Is(err, entity.ErrSessionNotFound), errors.Is(err, entity.ErrNoActiveSurvey):
		return &HandlerError{
			Err:         err,
			UserMessage: render.ErrNoActiveSurvey,
			LogMessage:  "no active survey",
			Severity:    SeverityWarning,
		}
	case errors.Is(err, entity.ErrSurveyFinished):
		return &HandlerError{
			Err:         err,
			UserMessage: render.MsgSurveyFinished,
			LogMessage:  "survey already finished",
			Severity:    SeverityWarning,
		}
	case errors.Is(err, entity.ErrInvalidName):
		return &HandlerError{
			Err:         err,
			UserMessage: render.ErrInvalidName,
			LogMessage:  "invalid name input",
			Severity:    SeverityWarning,
		}
	case errors.Is(err, entity.ErrInvalidAnswer):
		return &HandlerError{
			Err:         err,
			UserMessage: render.ErrInvalidAnswer,
			LogMessage:  "non-binary answer rejected",
			Severity:    SeverityWarning,
		}
	case errors.Is(err, entity.ErrQuestionsParse), errors.Is(err, entity.ErrNoQuestions):
		return &HandlerError{
			Err:         err,
			UserMessage: render.ErrQuestionGeneration,
			LogMessage:  "question generation failed",
			Severity:    SeverityError,
		}
	case errors.Is(err, entity.ErrAnalysisFailed):
		return &HandlerError{
			Err:         err,
			UserMessage: render.ErrAnalysisFailed,
			LogMessage:  "analysis failed",
			Severity:    SeverityError,
		}
	}

	// Timeouts and cancellations
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &HandlerError{
			Err:         err,
			UserMessage: render.ErrTimeout,
			LogMessage:  "operation timed out",
			Severity:    SeverityError,
		}
	}

	// Network errors
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return &HandlerError{
				Err:         err,
				UserMessage: render.ErrTimeout,
				LogMessage:  "network timeout",
				Severity:    SeverityError,
			}
		}
		return &HandlerError{
			Err:         err,
			UserMessage: render.ErrNetworkIssue,
			LogMessage:  "network error",
			Severity:    SeverityError,
		}
	}

	return &HandlerError{
		Err:         err,
		UserMessage: render.ErrGeneric,
		LogMessage:  "handler error",
		Severity:    SeverityError,
	}
}

// HandleError provides centralized error handling for all handlers.
// It logs the error with appropriate severity and sends a user-friendly message.
func (h *BaseHandler) HandleError(ctx context.Context, chatID int64, err error) {
	if err == nil {
		return
	}

	handlerErr := classifyHandlerError(err)

	switch handlerErr.Severity {
	case SeverityError:
		ctxzap.Error(ctx, handlerErr.LogMessage,
			zap.Error(handlerErr.Err),
			zap.Int64("chat_id", chatID),
		)
	default:
		ctxzap.Warn(ctx, handlerErr.LogMessage,
			zap.Error(handlerErr.Err),
			zap.Int64("chat_id", chatID),
		)
	}

	if h.messageSender != nil {
		h.messageSender.Send(chatID, handlerErr.UserMessage, nil)
	}
}
