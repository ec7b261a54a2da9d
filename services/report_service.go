package services

import (
	"strconv"

	"urbancard/models"

	"github.com/beevik/etree"
	"gorm.io/gorm"
)

// ReportService формирует XML выгрузку данных для аудита. В отличие от
// обычных запросов выгрузка включает и удаленные записи.
type ReportService struct {
	db *gorm.DB
}

// NewReportService создает новый экземпляр ReportService
func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// ExportXML выгружает все записи пользователей и карт, включая удаленные
func (s *ReportService) ExportXML() ([]byte, error) {
	var users []models.User
	if err := s.db.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}

	var cards []models.Card
	if err := s.db.Order("record ASC").Find(&cards).Error; err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("export")

	usersEl := root.CreateElement("users")
	for i := range users {
		u := &users[i]
		el := usersEl.CreateElement("user")
		el.CreateAttr("id", strconv.FormatUint(uint64(u.ID), 10))
		el.CreateElement("name").SetText(u.Name)
		el.CreateElement("email").SetText(u.Email)
		el.CreateElement("role").SetText(string(u.Role))
		el.CreateElement("deleted").SetText(strconv.FormatBool(u.IsDeleted))
	}

	cardsEl := root.CreateElement("cards")
	for i := range cards {
		c := &cards[i]
		el := cardsEl.CreateElement("card")
		el.CreateAttr("number", c.Number)
		el.CreateElement("title").SetText(c.Title)
		el.CreateElement("status").SetText(strconv.FormatBool(c.Status))
		el.CreateElement("type").SetText(string(c.Type))
		el.CreateElement("userId").SetText(strconv.FormatUint(uint64(c.UserID), 10))
		el.CreateElement("deleted").SetText(strconv.FormatBool(c.IsDeleted))
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}
