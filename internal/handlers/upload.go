package handlers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadBytes = 5 << 20

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// UploadImage stores a multipart image under the upload dir with a generated
// filename and returns its public URL. Opaque to the cart/order flow: the
// returned URL is just pasted into product or category documents.
func UploadImage(uploadDir, publicBaseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/uploads"
		defer handlePanic(c, route)

		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
			return
		}

		if file.Size > maxUploadBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
			return
		}

		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedImageExtensions[ext] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type"})
			return
		}

		if err := os.MkdirAll(uploadDir, 0o755); err != nil {
			log.Println("[UPLOAD] [ERROR] mkdir failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "upload failed")
			return
		}

		name := uuid.NewString() + ext
		dst := filepath.Join(uploadDir, name)
		if err := c.SaveUploadedFile(file, dst); err != nil {
			log.Println("[UPLOAD] [ERROR] save failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "upload failed")
			return
		}

		url := fmt.Sprintf("%s/public/uploads/%s", strings.TrimRight(publicBaseURL, "/"), name)

		log.Println("[UPLOAD] [INFO] image stored:", name)
		c.JSON(http.StatusCreated, gin.H{
			"path": "uploads/" + name,
			"url":  url,
		})
	}
}

// DeleteUpload removes a previously uploaded file, refusing anything outside
// the uploads tree.
func DeleteUpload(uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		relPath := strings.TrimSpace(c.Query("path"))
		if relPath == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "path is required"})
			return
		}

		if err := safeDeleteUpload(uploadDir, relPath); err != nil {
			log.Println("[UPLOAD] [ERROR] delete failed:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid path"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "file deleted"})
	}
}
