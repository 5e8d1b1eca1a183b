// Package slam implements the line-segment SLAM engine: conversion of a
// LIDAR revolution into robot-frame points, polyline extraction, least
// squares line fitting, rigid frame transforms, and the match/merge/correct
// loop that assimilates observed segments into a persistent world-frame map.
//
// All spatial quantities are integer millimetres and all headings are
// fixed-point angle16 units, matching the original firmware-style core this
// package generalizes. Floating point is used only where the algorithm is
// inherently continuous (line fitting, trig table construction).
package slam
