// Package paths turns the configuration into concrete filesystem paths.
//
// Every path the converter touches is a root directory (from
// XNATIMAGEVIEWER_HOME or CATALINA_HOME) joined with a fixed relative path
// from the [layout] config section. Resolution never touches the filesystem.
//
// A backup name is the file name cut at its first dot plus the backup
// suffix, in the same directory:
//
//	screens/XImgView.vm  -> screens/XImgView.BKP
//	viewer/popup.html    -> viewer/popup.BKP
package paths
