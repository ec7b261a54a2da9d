package controllers

import (
	"net/http"

	"urbancard/services"
	"urbancard/utils"
)

// ReportController отдает служебные данные для администраторов
type ReportController struct {
	reportService *services.ReportService
}

// NewReportController создает новый экземпляр ReportController
func NewReportController(reportService *services.ReportService) *ReportController {
	return &ReportController{reportService: reportService}
}

// ExportReport выгружает все записи пользователей и карт в XML,
// включая удаленные. Это аудиторский путь чтения: обычные запросы
// удаленных записей не видят.
func (c *ReportController) ExportReport(w http.ResponseWriter, r *http.Request) {
	data, err := c.reportService.ExportXML()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Write(data)
}

// GetMetrics возвращает снимок метрик приложения
func (c *ReportController) GetMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, utils.GetMetrics().GetMetricsSnapshot())
}
