package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/shop-agenda/internal/httperr"
)

// mapBookingError traduz os códigos de negócio do núcleo de
// agendamento para HTTP. slot_taken é 409: desfecho esperado, o
// cliente reconsulta a disponibilidade e escolhe outro horário.
func mapBookingError(c *gin.Context, err error) {
	switch code := httperr.BusinessCode(err); code {
	case "slot_taken":
		httperr.Conflict(c, code, "Horário acabou de ser ocupado. Escolha outro.")

	case "not_found":
		httperr.NotFound(c, code, "Registro não encontrado.")

	case "invalid_date", "invalid_date_or_time", "too_soon",
		"outside_working_hours", "invalid_email", "invalid_duration":
		httperr.BadRequest(c, code, "Dados inválidos para agendamento.")

	case "invalid_transition":
		httperr.BadRequest(c, code, "Mudança de status inválida.")

	case "invalid_schedule_config":
		// Agenda mal configurada é erro do admin, não do cliente:
		// propaga visível para ser corrigido.
		httperr.Write(c, http.StatusUnprocessableEntity, code, "Agenda mal configurada. Contate o estabelecimento.")

	case "storage_unavailable":
		httperr.Unavailable(c, code, "Serviço temporariamente indisponível. Tente novamente.")

	default:
		httperr.Internal(c, "internal_error", "Erro interno.")
	}
}
