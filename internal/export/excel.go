// internal/export/excel.go
package export

import (
	"bytes"
	"fmt"
	"time"

	"minutes-service/internal/common/errors"
	"minutes-service/internal/models"

	"github.com/xuri/excelize/v2"
)

const recordsSheet = "纪要记录"

var excelHeaders = []string{"序号", "记录ID", "项目名称", "商机编码", "签约客户", "预算（元）", "产能类型", "创建时间"}

// BuildWorkbook renders records into an xlsx workbook, one row per record,
// with a handful of payload fields lifted into columns.
func BuildWorkbook(records []models.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(recordsSheet)
	if err != nil {
		return nil, errors.NewExportFailedError(err)
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	for col, header := range excelHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(recordsSheet, cell, header); err != nil {
			return nil, errors.NewExportFailedError(err)
		}
	}

	for i, rec := range records {
		fields := payloadFields(rec)
		values := []interface{}{
			i + 1,
			rec.ID,
			rec.ProjectName,
			rec.BusinessCode,
			fields.GetTrimmed(models.FieldContractClient),
			fields.GetTrimmed(models.FieldBudgetAmount),
			fields.GetTrimmed(models.FieldCapacityType),
			rec.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(recordsSheet, cell, v); err != nil {
				return nil, errors.NewExportFailedError(err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, errors.NewExportFailedError(err)
	}
	return buf.Bytes(), nil
}

// WorkbookFilename names an xlsx download with a minute-resolution timestamp.
func WorkbookFilename(now time.Time) string {
	return fmt.Sprintf("records_%s.xlsx", now.Format("200601021504"))
}

// payloadFields decodes the stored payload leniently: a record whose payload
// no longer parses still exports its denormalized columns.
func payloadFields(rec models.Record) models.FormSnapshot {
	snap, err := Parse(rec.Payload)
	if err != nil {
		return models.FormSnapshot{}
	}
	return snap.Fields
}
