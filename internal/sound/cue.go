// Package sound plays short cues on the terminal client.
package sound

// Cue names a sound; a file assets/sounds/<cue>.mp3 or .wav overrides the built-in tone
type Cue string

const (
	CueTurn  Cue = "turn"  // 轮到自己
	CueWin   Cue = "win"   // 自己获胜
	CueLose  Cue = "lose"  // 本局结束但不是自己赢
	CueError Cue = "error" // 操作被拒绝
)
