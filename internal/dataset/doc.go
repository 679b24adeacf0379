// Package dataset loads a city's trip log into an Apache Arrow record and
// filters it by month and day.
//
// # Schema
//
// Columns are typed by header name: Start Time is a timestamp in seconds,
// Trip Duration and Birth Year are float64 and everything else is text.
// Empty cells become nulls. Two derived columns are appended to every table:
//
//	Month  full month name of Start Time ("January")
//	Day    full weekday name of Start Time ("Sunday")
//
// # Ownership
//
// A Table holds one reference to its record. The caller that receives a
// Table from Loader.Load or Filter must call Release when done with it.
//
//	tbl, err := loader.Load(ctx, sel)
//	if err != nil {
//		return err
//	}
//	defer tbl.Release()
package dataset
