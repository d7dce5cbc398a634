package services

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// TrackTime logs how long funcName ran; call as defer TrackTime("Fn", time.Now())
func TrackTime(funcName string, start time.Time) {
	elapsed := time.Since(start)
	log.Debugf("%s took %d µs", funcName, elapsed.Microseconds())
}
