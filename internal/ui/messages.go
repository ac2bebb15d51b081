package ui

import (
	"vid2anim/internal/model"
	"vid2anim/internal/progress"
)

type stageMsg struct {
	U progress.Update
}

type convertDoneMsg struct {
	Res model.ConversionResult
}
