// Package greenops turns kilogram CO2e figures into display text.
//
// It owns the carbon amount formatter used across the CLI and dashboard
// ("500g CO₂", "2.3kg CO₂"), locale-aware number formatting, unit
// normalisation to kilograms, and EPA-based equivalencies such as
// "miles driven" that make a footprint easier to picture.
package greenops
