package build

import (
	"sync"
	"time"
)

// BuildMetrics tracks transform performance
type BuildMetrics struct {
	TotalBuilds      int64
	SuccessfulBuilds int64
	FailedBuilds     int64
	Warnings         int64
	CacheHits        int64
	AverageDuration  time.Duration
	TotalDuration    time.Duration
	mutex            sync.RWMutex
}

// NewBuildMetrics creates a new build metrics tracker
func NewBuildMetrics() *BuildMetrics {
	return &BuildMetrics{}
}

// RecordBuild records the outcome of one transform
func (bm *BuildMetrics) RecordBuild(result Result, err error) {
	bm.mutex.Lock()
	defer bm.mutex.Unlock()

	bm.TotalBuilds++
	bm.TotalDuration += result.Duration

	if result.CacheHit {
		bm.CacheHits++
	}
	if result.Warning != nil {
		bm.Warnings++
	}

	if err != nil {
		bm.FailedBuilds++
	} else {
		bm.SuccessfulBuilds++
	}

	bm.AverageDuration = bm.TotalDuration / time.Duration(bm.TotalBuilds)
}

// GetSnapshot returns a copy of the current metrics
func (bm *BuildMetrics) GetSnapshot() BuildMetrics {
	bm.mutex.RLock()
	defer bm.mutex.RUnlock()

	return BuildMetrics{
		TotalBuilds:      bm.TotalBuilds,
		SuccessfulBuilds: bm.SuccessfulBuilds,
		FailedBuilds:     bm.FailedBuilds,
		Warnings:         bm.Warnings,
		CacheHits:        bm.CacheHits,
		AverageDuration:  bm.AverageDuration,
		TotalDuration:    bm.TotalDuration,
	}
}

// Reset resets all metrics
func (bm *BuildMetrics) Reset() {
	bm.mutex.Lock()
	defer bm.mutex.Unlock()

	bm.TotalBuilds = 0
	bm.SuccessfulBuilds = 0
	bm.FailedBuilds = 0
	bm.Warnings = 0
	bm.CacheHits = 0
	bm.AverageDuration = 0
	bm.TotalDuration = 0
}

// GetCacheHitRate returns the format cache hit rate as a percentage
func (bm *BuildMetrics) GetCacheHitRate() float64 {
	bm.mutex.RLock()
	defer bm.mutex.RUnlock()

	if bm.TotalBuilds == 0 {
		return 0
	}
	return float64(bm.CacheHits) / float64(bm.TotalBuilds) * 100
}

// GetSuccessRate returns the transform success rate as a percentage
func (bm *BuildMetrics) GetSuccessRate() float64 {
	bm.mutex.RLock()
	defer bm.mutex.RUnlock()

	if bm.TotalBuilds == 0 {
		return 0
	}
	return float64(bm.SuccessfulBuilds) / float64(bm.TotalBuilds) * 100
}
