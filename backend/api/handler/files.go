package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"pdf-voice/backend/common"
	pverrors "pdf-voice/backend/common/errors"
	"pdf-voice/backend/common/i18n"
	"pdf-voice/backend/library/storage"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetIndex(c *gin.Context) {
	files, err := h.Files.ListFiles(c.Request.Context(), userID(c))
	if err != nil {
		c.Error(err)
	}
	h.render(c, "index.html", page{Title: "Convert", Files: files})
}

// PostIndex converts the chosen file and shows its text with an audio player.
func (h *Handler) PostIndex(c *gin.Context) {
	filename := c.PostForm("list1")
	if filename == "" {
		flashCode(c, common.FlashWarning, pverrors.ErrNoFileChosen, "/")
		return
	}

	conv, err := h.Converter.Convert(c.Request.Context(), userID(c), filename)
	if err != nil {
		flashError(c, err, "/")
		return
	}

	files, err := h.Files.ListFiles(c.Request.Context(), userID(c))
	if err != nil {
		c.Error(err)
	}
	common.AddFlash(c, common.FlashSuccess, i18n.Translate(pverrors.MsgConverted, c.GetString("lang")))
	h.render(c, "index.html", page{
		Title:     "Convert",
		Files:     files,
		Filename:  conv.Filename,
		FullText:  conv.Text,
		AudioFile: conv.AudioFile,
		AudioURL:  audioURL(conv.AudioFile),
	})
}

func (h *Handler) GetUpload(c *gin.Context) {
	h.render(c, "upload.html", page{Title: "Upload"})
}

func (h *Handler) PostUpload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		flashCode(c, common.FlashWarning, pverrors.ErrNoFileChosen, "/upload")
		return
	}
	if _, err := h.Uploader.SaveMultipart(c.Request.Context(), userID(c), header); err != nil {
		flashError(c, err, "/upload")
		return
	}
	flashCode(c, common.FlashSuccess, pverrors.MsgUploaded, "/upload")
}

func (h *Handler) GetRemove(c *gin.Context) {
	files, err := h.Files.ListFiles(c.Request.Context(), userID(c))
	if err != nil {
		c.Error(err)
	}
	h.render(c, "remove.html", page{Title: "Remove", Files: files})
}

func (h *Handler) PostRemove(c *gin.Context) {
	filename := c.PostForm("list2")
	if filename == "" {
		flashCode(c, common.FlashWarning, pverrors.ErrNoFileChosen, "/remove")
		return
	}
	if err := h.Files.RemoveFile(c.Request.Context(), userID(c), filename); err != nil {
		flashError(c, err, "/remove")
		return
	}
	flashCode(c, common.FlashSuccess, pverrors.MsgRemoved, "/remove")
}

// GetAudio streams one of the caller's own audio artifacts.
func (h *Handler) GetAudio(c *gin.Context) {
	name := c.Param("name")
	if !strings.EqualFold(filepath.Ext(name), common.AudioExt) {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	path, err := h.Audio.Path(userID(c), name)
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	ok, err := storage.Exists(path)
	if err != nil || !ok {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	c.Header("Content-Type", "audio/mpeg")
	c.File(path)
}
