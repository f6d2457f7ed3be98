package api

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"rehabengine/adapters/excel"
	"rehabengine/app"
	"rehabengine/domain/dataset"
	"rehabengine/internal"
)

const maxUploadBytes = 32 << 20

// DatasetHandler serves generation, listing, profiling, export, and upload.
type DatasetHandler struct {
	generation *app.GenerationService
	logger     *internal.Logger
}

// NewDatasetHandler creates the dataset handler.
func NewDatasetHandler(generation *app.GenerationService, logger *internal.Logger) *DatasetHandler {
	return &DatasetHandler{generation: generation, logger: logger}
}

// HandleGenerate runs a synchronous generation.
func (h *DatasetHandler) HandleGenerate() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req app.GenerateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}

		result, err := h.generation.Generate(c.Request.Context(), req)
		if err != nil {
			h.logger.Error("Generation failed: %v", err)
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// HandleList returns stored dataset names.
func (h *DatasetHandler) HandleList() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"datasets": h.generation.List()})
	}
}

// HandleGet returns one dataset's run metadata and table row counts.
func (h *DatasetHandler) HandleGet() gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := h.generation.Get(c.Param("name"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"run_id":       snap.RunID,
			"seed":         snap.Seed,
			"inmate_count": snap.InmateCount,
			"generated_at": snap.GeneratedAt,
			"tables":       snap.Summary(),
		})
	}
}

// HandleProfile computes summary statistics for every table of a dataset.
func (h *DatasetHandler) HandleProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		summaries, err := h.generation.Profile(c.Param("name"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"tables": summaries})
	}
}

// HandleExport exports a dataset. With table and format query parameters it
// streams one table back; without them it writes every table to the output
// directory and reports what was written.
func (h *DatasetHandler) HandleExport() gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		tableName := c.Query("table")
		format := strings.ToLower(c.DefaultQuery("format", "csv"))

		if tableName == "" {
			dir, err := h.generation.Export(name)
			if err != nil {
				respondError(c, err)
				return
			}
			files := make([]string, 0, len(dataset.TableNames)*2+1)
			for _, t := range dataset.TableNames {
				files = append(files, t+".csv", t+".xlsx")
			}
			files = append(files, excel.CombinedWorkbookName)
			c.JSON(http.StatusOK, gin.H{"output_dir": dir, "files": files})
			return
		}

		snap, err := h.generation.Get(name)
		if err != nil {
			respondError(c, err)
			return
		}
		tbl, err := snap.Table(tableName)
		if err != nil {
			respondError(c, err)
			return
		}

		switch format {
		case "csv":
			data, err := excel.RenderCSV(tbl)
			if err != nil {
				respondError(c, err)
				return
			}
			c.Header("Content-Disposition", attachment(tableName+".csv"))
			c.Data(http.StatusOK, "text/csv", data)
		case "xlsx":
			data, err := excel.RenderXLSX(tbl)
			if err != nil {
				respondError(c, err)
				return
			}
			c.Header("Content-Disposition", attachment(tableName+".xlsx"))
			c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv or xlsx"})
		}
	}
}

// HandleUpload ingests one table file (CSV or XLSX) into a dataset.
func (h *DatasetHandler) HandleUpload() gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field: " + err.Error()})
			return
		}
		if fileHeader.Size > maxUploadBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
			return
		}

		datasetName := c.DefaultPostForm("dataset", "uploaded")
		tableName := c.PostForm("table")
		if tableName == "" {
			tableName = strings.TrimSuffix(fileHeader.Filename, filepath.Ext(fileHeader.Filename))
		}
		format := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileHeader.Filename)), ".")

		f, err := fileHeader.Open()
		if err != nil {
			respondError(c, err)
			return
		}
		defer f.Close()
		content, err := io.ReadAll(f)
		if err != nil {
			respondError(c, err)
			return
		}

		tbl, err := h.generation.Upload(datasetName, tableName, content, format)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"dataset": datasetName,
			"table":   tbl.Name,
			"rows":    tbl.RowCount(),
			"columns": len(tbl.Headers),
		})
	}
}

func attachment(filename string) string {
	return fmt.Sprintf("attachment; filename=%q", filename)
}
