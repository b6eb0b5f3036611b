package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"etherlink/application/commands/bus"
	querybus "etherlink/application/queries/bus"
	"etherlink/pkg/common"
	pkgerrors "etherlink/pkg/errors"
)

// base carries what every handler needs to dispatch and respond
type base struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *pkgerrors.ErrorHandler
	logger     *zap.Logger
}

func newBase(commandBus *bus.CommandBus, queryBus *querybus.QueryBus, errors *pkgerrors.ErrorHandler, logger *zap.Logger) base {
	return base{commandBus: commandBus, queryBus: queryBus, errors: errors, logger: logger}
}

// decode reads a JSON body, reporting malformed input as INVALID_INPUT
func (b base) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := common.ParseJSONBody(w, r, v, common.MaxBodyBytes); err != nil {
		b.errors.Handle(w, r, invalidInput("invalid request body").WithCause(err))
		return false
	}
	return true
}

// send dispatches a command and writes its result with status
func (b base) send(w http.ResponseWriter, r *http.Request, status int, cmd bus.Command) {
	result, err := b.commandBus.Send(r.Context(), cmd)
	if err != nil {
		b.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, status, result)
}

// ask dispatches a query and writes its result
func (b base) ask(w http.ResponseWriter, r *http.Request, query querybus.Query) {
	result, err := b.result(r.Context(), query)
	if err != nil {
		b.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

func (b base) result(ctx context.Context, query querybus.Query) (interface{}, error) {
	return b.queryBus.Ask(ctx, query)
}

func invalidInput(message string) *pkgerrors.AppError {
	return pkgerrors.NewValidationError(pkgerrors.RuleInvalidInput, message)
}
