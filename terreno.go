// Package terreno collects buildable land listings from a real-estate
// catalog. It walks the region index, paginates each region's listing
// pages, filters candidates against business rules and appends every
// qualifying property to durable storage as soon as it is extracted.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, csv/).
package terreno
