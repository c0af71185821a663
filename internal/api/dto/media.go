package dto

// MediaUploadDTO 上传结果
type MediaUploadDTO struct {
	URL string `json:"url"`
}
