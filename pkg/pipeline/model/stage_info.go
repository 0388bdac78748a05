package model

type stageKind string

const (
	SourceStageKind  stageKind = "source"
	ProcessStageKind stageKind = "process"
	SinkStageKind    stageKind = "sink"
)

var (
	SourceStage = &StageInfo{Kind: SourceStageKind, Name: "input"}
	SinkStage   = &StageInfo{Kind: SinkStageKind, Name: "output"}
)

// StageInfo describes one external process stage: the executable to run
// and the arguments it receives. Name identifies the stage in error
// messages, measurements and drawings.
type StageInfo struct {
	Kind stageKind
	Name string
	Path string
	Args []string
}
