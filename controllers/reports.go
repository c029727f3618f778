// controllers/reports.go
package controllers

import (
	"net/http"

	"agencydesk-backend/config"
	"agencydesk-backend/services"
	"agencydesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetDashboardReport computes the four dashboard views for the authenticated
// owner, scoped by range and an optional employee filter.
func GetDashboardReport(c *gin.Context) {
	ownerID, ok := ownerUUID(c)
	if !ok {
		return
	}

	rangeSel := c.DefaultQuery("range", utils.DefaultRange)
	employeeParam := c.DefaultQuery("employee", "all")

	var employee *uuid.UUID
	if employeeParam != "all" {
		parsed, err := uuid.Parse(employeeParam)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid employee ID format")
			return
		}
		employee = &parsed
	}

	reports := services.NewReportService(config.DB)
	report, err := reports.Dashboard(c.Request.Context(), ownerID, rangeSel, employee)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute dashboard report")
		return
	}

	utils.RespondWithData(c, http.StatusOK, "Dashboard report fetched successfully", report)
}
