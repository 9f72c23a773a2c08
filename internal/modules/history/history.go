package history

import (
	"time"

	"github.com/reusedev/room-stager/internal/modules/logs"
	"github.com/reusedev/room-stager/internal/modules/observer"
	"gorm.io/gorm"
)

// InvokeHistory is one upstream model call, kept for diagnostics only.
type InvokeHistory struct {
	Id         int       `json:"id" gorm:"primaryKey"`
	RequestId  string    `json:"request_id" gorm:"column:request_id;type:varchar(64);index"`
	Flow       string    `json:"flow" gorm:"column:flow;type:varchar(20)"`
	ModelName  string    `json:"model_name" gorm:"column:model_name;type:varchar(64)"`
	Attempt    int       `json:"attempt" gorm:"column:attempt;type:int"`
	StatusCode int       `json:"status_code" gorm:"column:status_code;type:int"`
	Error      string    `json:"error" gorm:"column:error;type:varchar(2000)"`
	DurationMs int64     `json:"duration_ms" gorm:"column:duration_ms;type:int"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at;not null"`
}

func (InvokeHistory) TableName() string {
	return "invoke_history"
}

const maxErrorLen = 2000

type Recorder struct {
	db *gorm.DB
}

func NewRecorder(db *gorm.DB) (*Recorder, error) {
	if err := db.AutoMigrate(&InvokeHistory{}); err != nil {
		return nil, err
	}
	return &Recorder{db: db}, nil
}

func (r *Recorder) Update(event observer.Event, data interface{}) {
	if event != observer.EventModelAttempt {
		return
	}
	a, ok := data.(*observer.Attempt)
	if !ok {
		return
	}
	record := InvokeHistory{
		RequestId:  a.RequestID,
		Flow:       a.Flow,
		ModelName:  a.Model,
		Attempt:    a.Attempt,
		StatusCode: a.StatusCode,
		DurationMs: a.Duration.Milliseconds(),
		CreatedAt:  a.At,
	}
	if a.Err != nil {
		msg := a.Err.Error()
		if len(msg) > maxErrorLen {
			msg = msg[:maxErrorLen]
		}
		record.Error = msg
	}
	if err := r.db.Model(&InvokeHistory{}).Create(&record).Error; err != nil {
		logs.Logger.Err(err).Str("request_id", a.RequestID).Msg("save invoke history")
	}
}

// ByRequest lists the attempts of one request in call order.
func (r *Recorder) ByRequest(requestID string) ([]InvokeHistory, error) {
	var ret []InvokeHistory
	err := r.db.Model(&InvokeHistory{}).Where("request_id = ?", requestID).Order("id").Find(&ret).Error
	return ret, err
}
