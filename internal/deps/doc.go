// Package deps reports the external programs menubg relies on: the ffmpeg and
// ffprobe binaries used by the border transform and the closed-source BK2
// converter the install workflow launches.
package deps
