package handlers

import (
	"os"
	"path/filepath"

	"jerkco/internal/domain"
	applog "jerkco/internal/log"
	"jerkco/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UploadHandler struct {
	Dir string
}

// Upload stores a product image under the configured directory. Only
// png/jpg/jpeg/gif extensions are accepted; the stored name is a uuid
// so client filenames never reach the filesystem.
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return jsonError(c, domain.Invalid("Missing image file"))
	}
	ext, ok := validate.ImageExt(fh.Filename)
	if !ok {
		applog.Security(c, "upload.reject", map[string]any{"filename": fh.Filename})
		return jsonError(c, domain.Invalid("File type not allowed"))
	}

	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		return jsonError(c, err)
	}
	name := uuid.NewString() + "." + ext
	if err := c.SaveFile(fh, filepath.Join(h.Dir, name)); err != nil {
		applog.Error(c, "upload.save.fail", err, nil)
		return jsonError(c, err)
	}

	applog.Audit(c, "upload.save", map[string]any{"stored": name})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "File uploaded successfully",
		"image_url": "/uploads/" + name,
	})
}
