package convert

import (
	"fmt"
	"time"
)

// TimestampFormat is the layout of the generated banner timestamp.
const TimestampFormat = "2006-01-02 15:04:05"

// velocityHeader declares the context objects the screen template uses.
var velocityHeader = []string{
	`#* @vtlvariable name="content" type="org.apache.turbine.services.pull.tools.ContentTool" *#`,
	`#* @vtlvariable name="displayManager" type="org.nrg.xdat.display.DisplayManager" *#`,
	`#* @vtlvariable name="om" type="org.nrg.xdat.om.XnatMrsessiondata" *#`,
}

// TemplateHeader returns the Velocity type annotation lines.
func TemplateHeader() []string {
	return append([]string(nil), velocityHeader...)
}

// bannerPadding is the number of blank lines around the banner comment.
const bannerPadding = 3

// Banner returns the generated-file comment surrounded by blank lines.
// The timestamp is always rendered in UTC.
func Banner(generator string, at time.Time) []string {
	comment := fmt.Sprintf("<!-- THIS FILE WAS AUTOGENERATED BY ($XNATImageViewer)/utility-scripts/%s at %s -->",
		generator, at.UTC().Format(TimestampFormat))

	lines := make([]string, 0, 2*bannerPadding+1)
	for i := 0; i < bannerPadding; i++ {
		lines = append(lines, "")
	}
	lines = append(lines, comment)
	for i := 0; i < bannerPadding; i++ {
		lines = append(lines, "")
	}
	return lines
}
