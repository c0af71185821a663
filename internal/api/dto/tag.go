package dto

// TagDTO 标签及热度
type TagDTO struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	UsageCount int    `json:"usage_count"`
}
