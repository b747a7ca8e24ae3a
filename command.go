package sprig

import "github.com/tanema/gween/ease"

// CommandType identifies what a Command does when the View applies it.
type CommandType uint8

const (
	CommandAnimate CommandType = iota // spring element ID toward Target, then apply Then
	CommandTween                      // tween element ID to Target over Duration, then apply Then
	CommandSetText                    // set the text bound to element ID
	CommandNotify                     // hand the command to the Handler's OnNotify
)

// Command is a unit of deferred work. Continuations are plain commands
// carried by springs and tweens and applied by the View's tick loop once
// the animation converges, so application code never mutates the view
// from inside a simulation step.
type Command struct {
	Type CommandType
	ID   string

	Target   Mat4
	Duration float32
	Ease     ease.TweenFunc

	Text string

	Then []Command
}

// AnimateElement springs the element's local transform to target and runs
// then once it converges.
func AnimateElement(id string, target Mat4, then ...Command) Command {
	return Command{Type: CommandAnimate, ID: id, Target: target, Then: then}
}

// TweenElement interpolates the element's local transform to target over
// duration seconds with the easing function (linear when nil).
func TweenElement(id string, target Mat4, duration float32, fn ease.TweenFunc, then ...Command) Command {
	return Command{Type: CommandTween, ID: id, Target: target, Duration: duration, Ease: fn, Then: then}
}

// SetText binds value to the text slot of element id.
func SetText(id, value string) Command {
	return Command{Type: CommandSetText, ID: id, Text: value}
}

// Notify forwards tag to the Handler, which may answer with more commands.
func Notify(tag string) Command {
	return Command{Type: CommandNotify, ID: tag}
}
