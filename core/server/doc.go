// Package server serves a fetched model directory over HTTP.
//
// It is a thin Fiber application with static file serving and a health
// endpoint, meant for inspecting downloaded artifacts or handing them to a
// co-located consumer.
package server
