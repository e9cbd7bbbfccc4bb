package render

import "github.com/gdamore/tcell/v2"

var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbWall       = tcell.NewRGBColor(65, 72, 104)   // Muted slate
	RgbWallEdge   = tcell.NewRGBColor(122, 162, 247) // Wall facing a passage
	RgbSafeBg     = tcell.NewRGBColor(20, 50, 30)    // Dark green start area
	RgbGoalBg     = tcell.NewRGBColor(70, 60, 10)    // Dark gold goal area

	RgbPatrol       = tcell.NewRGBColor(100, 150, 255) // Normal Blue
	RgbAgentAlive   = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbAgentDead    = tcell.NewRGBColor(180, 50, 50)   // Dark Red
	RgbAgentReached = tcell.NewRGBColor(50, 255, 50)   // Bright Green
	RgbReplayAgent  = tcell.NewRGBColor(255, 255, 255) // White

	RgbStatusText = tcell.NewRGBColor(0, 0, 0)       // Dark text for status
	RgbStatusBg   = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbReplayBg   = tcell.NewRGBColor(128, 0, 128)   // Dark purple
	RgbHudText    = tcell.NewRGBColor(180, 180, 180) // Brighter gray
	RgbHudKey     = tcell.NewRGBColor(255, 255, 0)   // Bright yellow
)
