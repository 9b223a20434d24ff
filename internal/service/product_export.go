package service

import (
	"io"
	"strings"

	"github.com/silkloom/storefront/internal/models"
	"github.com/silkloom/storefront/internal/repository"

	"github.com/tealeg/xlsx"
)

const productExportSheet = "Products"

var productExportHeaders = []string{
	"ID", "Name", "Slug", "Category", "Price", "Fabric", "WorkDetails",
	"InStock", "Featured", "Features", "ImageURLs", "CreatedAt", "UpdatedAt",
}

// ExportProducts 将全部商品写为 xlsx 工作簿
func (s *ProductService) ExportProducts(w io.Writer) error {
	products, _, err := s.repo.List(repository.ProductListFilter{WithCategory: true})
	if err != nil {
		return err
	}
	file, err := BuildProductWorkbook(products)
	if err != nil {
		return err
	}
	return file.Write(w)
}

// BuildProductWorkbook 构建商品导出工作簿
func BuildProductWorkbook(products []models.Product) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(productExportSheet)
	if err != nil {
		return nil, err
	}

	headerRow := sheet.AddRow()
	for _, h := range productExportHeaders {
		headerRow.AddCell().SetValue(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.Slug)
		categoryName := ""
		if p.Category != nil {
			categoryName = p.Category.Name
		}
		row.AddCell().SetValue(categoryName)
		row.AddCell().SetString(p.Price.String())
		row.AddCell().SetValue(p.Fabric)
		row.AddCell().SetValue(p.WorkDetails)
		row.AddCell().SetBool(p.InStock)
		row.AddCell().SetBool(p.Featured)
		row.AddCell().SetValue(strings.Join(p.Features, "; "))
		row.AddCell().SetValue(strings.Join(p.ImageURLs, "\n"))
		row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetValue(p.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	return file, nil
}
