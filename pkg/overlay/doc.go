// Package overlay keeps the registry of on-screen overlays for the client.
//
// An overlay is anything drawn on top of the game canvas: a tooltip, an
// XP tracker, a highlight that follows an NPC around. Feature code owns the
// overlays; this package only tracks which ones are live, in which order they
// draw and on which layer.
//
// # Draw order
//
// The Manager keeps its overlays sorted after every mutation:
//
//  1. By Position ordinal. DYNAMIC overlays (those that place themselves in
//     the scene) come before every anchored overlay.
//  2. Within one position, by Priority. For DYNAMIC overlays a higher
//     priority draws later and ends up on top. For anchored overlays a higher
//     priority draws first and ends up closest to its anchor.
//
// # Layers
//
// Sorted overlays are grouped by layer. An UNDER_WIDGETS overlay that the
// user dragged to a fixed location is grouped under ABOVE_WIDGETS instead, so
// it is not hidden behind the interface it was dragged over.
//
// # Persistence
//
// Preferred location, size and position are stored through a ConfigStore in
// the "runelite" group under "<name>_preferredLocation",
// "<name>_preferredSize" and "<name>_preferredPosition". Add loads them,
// SaveOverlay writes them, ResetOverlay deletes them.
//
// # Concurrency
//
// Renderers read Overlays and LayerOverlays every frame while plugins add
// and remove overlays from other goroutines. Reads are lock-free snapshots;
// mutations are serialized and publish a complete new snapshot.
package overlay
