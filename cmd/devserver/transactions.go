package devserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/bank-client/internal/domain"
	"github.com/go-petr/bank-client/pkg/web"
)

// listTransactions handles http request to read an account's history log.
func (h handler) listTransactions(gctx *gin.Context) {
	transactions, err := h.store.ListTransactions(gctx.Param("accountID"))
	if err != nil {
		gctx.JSON(http.StatusNotFound, web.Error(err))
		return
	}

	gctx.JSON(http.StatusOK, transactions)
}

type appendTransactionRequest struct {
	Type               string          `json:"type" binding:"required,oneof=DEPOSIT WITHDRAW TRANSFER"`
	SourceAccount      string          `json:"sourceAccount"`
	DestinationAccount string          `json:"destinationAccount"`
	Amount             decimal.Decimal `json:"amount"`
	Timestamp          time.Time       `json:"timestamp"`
}

// appendTransaction handles http request to append a record to an account's
// history log.
func (h handler) appendTransaction(gctx *gin.Context) {
	l := zerolog.Ctx(gctx.Request.Context())

	var req appendTransactionRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.JSONError{Error: web.ValidationMsg(ve)})
			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	if !req.Amount.IsPositive() {
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrNegativeAmount))
		return
	}

	if req.Timestamp.IsZero() {
		req.Timestamp = time.Now().UTC()
	}

	tx := domain.Transaction{
		Type:               req.Type,
		SourceAccount:      req.SourceAccount,
		DestinationAccount: req.DestinationAccount,
		Amount:             req.Amount,
		Timestamp:          req.Timestamp,
	}

	recorded, err := h.store.AppendTransaction(gctx.Param("accountID"), tx)
	if err != nil {
		gctx.JSON(http.StatusNotFound, web.Error(err))
		return
	}

	gctx.JSON(http.StatusCreated, recorded)
}
