// Package server exposes an advisor over HTTP: pain-point analysis,
// catalog browsing and health reporting on a Gin router.
package server
