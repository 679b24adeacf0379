// Package analytics computes and prints the time, station, trip duration and
// user statistics of a trip table. Modes break ties by first occurrence and
// missing values are ignored.
package analytics
