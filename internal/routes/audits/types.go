package audits

import "time"

type Audit struct {
	Id           string     `json:"id"`
	Action       string     `json:"action"`
	ResourceType string     `json:"resourceType"`
	ResourceId   string     `json:"resourceId"`
	Message      *string    `json:"message"`
	ExpiresIn    *time.Time `json:"expiresIn"`
	CreateTime   time.Time  `json:"createTime"`
	UpdateTime   time.Time  `json:"updateTime"`
}
