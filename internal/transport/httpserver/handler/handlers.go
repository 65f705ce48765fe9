package handler

import (
	attendancedomain "social-care-go/internal/domain/attendance"
	benefitdomain "social-care-go/internal/domain/benefit"
	familydomain "social-care-go/internal/domain/family"
	persondomain "social-care-go/internal/domain/person"
	settingsdomain "social-care-go/internal/domain/settings"
	"social-care-go/internal/metrics"
	"social-care-go/pkg/logger"
)

type Handlers struct {
	Families    *familydomain.Service
	Attendances *attendancedomain.Service
	Benefits    *benefitdomain.Service
	Settings    *settingsdomain.Service
	Directory   persondomain.Directory

	recorder metrics.Recorder
	log      logger.Logger
}

func New(
	families *familydomain.Service,
	attendances *attendancedomain.Service,
	benefits *benefitdomain.Service,
	settings *settingsdomain.Service,
	directory persondomain.Directory,
	recorder metrics.Recorder,
	log logger.Logger,
) *Handlers {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Handlers{
		Families:    families,
		Attendances: attendances,
		Benefits:    benefits,
		Settings:    settings,
		Directory:   directory,
		recorder:    recorder,
		log:         log,
	}
}
