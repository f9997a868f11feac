package descriptions

// Comprehensive tool descriptions with practical examples and use cases

const (
	// Document Tools
	AnnotatorOpenDocumentDescription = `Open a PDF document for annotation.

**When to use:** Start of every annotation session, or to switch to a different document.

**Why it's useful:** Loads page geometry (sizes, count) needed for coordinate conversion and validates the document before any editing happens.

**Examples:**
• Start a review: "Open contract.pdf so I can mark it up"
• Switch documents: "Open chapter-2.pdf, we're done with chapter 1"

**Common workflows:**
1. Review Session: Open document → Add strokes and text → Export annotated copy
2. Page Cleanup: Open document → Remove or reorder pages → Export

**Best practices:** Opening a new document clears all in-memory annotations from the previous one; export first if you want to keep them.`

	AnnotatorAddStrokeDescription = `Draw a freehand pencil stroke on a page.

**When to use:** Freehand markup: underlining by hand, circling regions, margin marks, signatures drawn with pointer samples.

**Why it's useful:** Accepts raw screen-space pointer samples plus the current zoom, converts them to document units, and smooths the polyline on export so it renders like a pen line rather than a jagged trace.

**Examples:**
• Circle a clause: "Add a red stroke around the liability paragraph on page 3"
• Sign a form: "Draw my initials at the bottom of page 1"

**Common workflows:**
1. Markup Pass: Add strokes per page → List annotations → Export
2. Correction: Add stroke → Erase part of it → Add replacement

**Best practices:** Provide at least two points; single-point taps are rejected. Points are JSON-encoded as an array of {x, y} objects.`

	AnnotatorEraseDescription = `Erase stroke segments under a circular eraser, splitting strokes where needed.

**When to use:** Removing part of a drawn stroke without deleting the whole annotation.

**Why it's useful:** The eraser splits strokes at the circle boundary: portions outside the circle survive as independent strokes with the original styling, so erasing the middle of a line leaves both ends intact.

**Examples:**
• Clean an overshoot: "Erase where the stroke crosses into the margin on page 2"
• Drag erase: "Erase everything along the path from the top of the figure to the bottom"

**Common workflows:**
1. Tap Erase: Single center + radius → strokes split at the footprint
2. Drag Erase: From/to points → the path is swept densely so thin strokes cannot slip between samples

**Best practices:** Radius is in screen pixels and scales with zoom; strokes merely grazed by the circle edge are split, strokes fully inside vanish.`

	AnnotatorAddTextDescription = `Place a text annotation at a position on a page.

**When to use:** Typed comments, labels, stamps like "APPROVED", or any textual markup.

**Why it's useful:** Text annotations carry font family, size, color, and bold/italic/underline styling, and are stamped into the exported PDF using standard PDF fonts so every viewer renders them.

**Examples:**
• Add a comment: "Put 'needs citation' next to the second paragraph of page 4"
• Stamp a page: "Add bold red 'DRAFT' at the top of every page"

**Common workflows:**
1. Annotate: Add text → Update wording or position later → Export
2. Form Filling: Add text entries over blank fields → Export a filled copy

**Best practices:** Font families map to standard PDF base fonts at export (Arial→Helvetica, TimesNewRoman/Georgia→Times, CourierNew→Courier).`

	AnnotatorUpdateTextDescription = `Update fields of an existing text annotation by id.

**When to use:** Changing the wording, position, size, color, or styling of placed text without deleting and re-adding it.

**Why it's useful:** Partial updates: only the fields you provide change, everything else is preserved. Updating an id that no longer exists is a harmless no-op.

**Examples:**
• Fix a typo: "Change annotation 3f2a… to say 'Reviewed' instead of 'Reviwed'"
• Restyle: "Make that comment bold and blue"

**Common workflows:**
1. Iterate: Add text → Read it in context → Update until it reads right
2. Repositioning: Update x/y after page layout changes

**Best practices:** Get annotation ids from annotator_list_annotations or from the add result.`

	AnnotatorRemoveAnnotationDescription = `Delete a stroke or text annotation by id.

**When to use:** Discarding an annotation entirely, of either kind.

**Why it's useful:** One call covers both strokes and text; removing an id that was already deleted is a no-op, so retries are safe.

**Examples:**
• Undo a markup: "Remove the stroke I just added"
• Clear a comment: "Delete the 'TODO' text on page 5"

**Common workflows:**
1. Cleanup: List annotations → Remove the stale ones → Export
2. Replace: Remove → Add a corrected version

**Best practices:** Removal is permanent for the in-memory session; there is no undo stack.`

	AnnotatorMoveAnnotationDescription = `Move a stroke or text annotation by a screen-space delta.

**When to use:** Repositioning an existing annotation after the surrounding markup or page layout changed.

**Why it's useful:** The delta arrives in screen pixels with the current zoom and is converted to document units, so a drag gesture translates directly. Works on either annotation kind by id; moving an id that no longer exists is a harmless no-op.

**Examples:**
• Nudge a comment: "Move the 'needs citation' note 20 pixels down"
• Relocate a mark: "Shift the circled region left, away from the margin"

**Common workflows:**
1. Adjust: Hit test or list to find the id → Move → List to confirm
2. Layout Change: Insert a page → Move annotations that now sit awkwardly

**Best practices:** Pair with annotator_hit_test to pick the annotation under the pointer before moving it.`

	AnnotatorHitTestDescription = `Find the topmost annotations under a screen point.

**When to use:** Selection: figuring out which stroke or text annotation sits under the pointer before updating, moving, or removing it.

**Why it's useful:** Returns the last-drawn stroke whose polyline passes within the pick tolerance (plus half its stroke width) and the last-placed text annotation whose box contains the point, so overlapping annotations resolve to the one drawn on top.

**Examples:**
• Pick before edit: "What annotation is at (140, 220) on page 2?"
• Disambiguate overlap: "Which of the two crossing strokes did I just click?"

**Common workflows:**
1. Select and Edit: Hit test → Update or move the returned id
2. Select and Delete: Hit test → Remove annotation

**Best practices:** Coordinates and tolerance are in screen pixels and scale with zoom; a miss on both kinds means the point is over empty page.`

	AnnotatorListAnnotationsDescription = `List strokes and text annotations, optionally filtered to one page.

**When to use:** Inspecting current markup state, finding annotation ids, or verifying an erase or page edit had the expected effect.

**Why it's useful:** Returns full annotation records (points, styling, page numbers) so downstream calls can reference exact ids and positions.

**Examples:**
• Audit a page: "What annotations are on page 2?"
• Find an id: "List everything so I can delete the red stroke"

**Common workflows:**
1. Inspect: List → pick ids → Update/Remove
2. Verify: Erase → List the page → confirm the split fragments

**Best practices:** Omit the page number (or pass 0) to list every page at once.`

	AnnotatorPageInsertDescription = `Insert a blank page into the document.

**When to use:** Adding a notes page, a separator, or room for a large annotation block.

**Why it's useful:** Annotations on later pages are renumbered in the same transaction, so existing markup stays attached to the right pages.

**Examples:**
• Notes page: "Insert a blank page after page 3 for my summary"
• Cover sheet: "Insert a blank page at the very front"

**Common workflows:**
1. Expand: Insert page → Add text annotations to it → Export
2. Restructure: Insert → Move pages → Remove leftovers

**Best practices:** after_index 0 inserts before the first page; the new page copies its neighbor's dimensions.`

	AnnotatorPageRemoveDescription = `Remove a page from the document.

**When to use:** Dropping blank, duplicated, or irrelevant pages.

**Why it's useful:** Annotations on the removed page are deleted and annotations on later pages are renumbered atomically, so no markup dangles against a missing page.

**Examples:**
• Drop a blank: "Remove page 7, it's empty"
• Trim appendix: "Remove the last page"

**Common workflows:**
1. Cleanup: Remove pages → List annotations → Export
2. Extraction: Remove everything but the pages you need

**Best practices:** The last remaining page cannot be removed; documents always keep at least one page.`

	AnnotatorPageMoveDescription = `Move a page to a new position in the document.

**When to use:** Reordering chapters, moving a cover sheet, fixing scan order.

**Why it's useful:** Every annotation follows its page: display numbers are remapped for all pages whose position shifts, in the same transaction as the file reorder.

**Examples:**
• Fix order: "Move page 5 to position 2"
• Append: "Move the first page to the end"

**Common workflows:**
1. Reorder: Move pages until the sequence is right → Export
2. Restructure: Insert → Move → Remove

**Best practices:** Positions are 1-based; moving a page to its current position is a no-op.`

	AnnotatorPageRotateDescription = `Rotate a page by a multiple of 90 degrees.

**When to use:** Fixing sideways or upside-down scans before annotating them.

**Why it's useful:** Rotation happens in the underlying document so both on-screen rendering and export agree on orientation.

**Examples:**
• Fix a scan: "Rotate page 4 by 90 degrees"
• Flip upright: "Rotate page 1 by 180"

**Common workflows:**
1. Normalize: Rotate crooked pages → Annotate → Export

**Best practices:** Rotate before adding annotations to a page; annotation coordinates are not remapped by rotation.`

	AnnotatorExportDescription = `Export an annotated copy of the document.

**When to use:** End of a session, to produce a PDF with all text annotations stamped in and stroke renderings prepared.

**Why it's useful:** The source document is never modified: export writes a copy with text annotations stamped at their exact positions using standard PDF fonts, and returns per-page content streams for the smoothed strokes.

**Examples:**
• Deliver a review: "Export to reviewed/contract-annotated.pdf"
• Snapshot progress: "Export what we have so far"

**Common workflows:**
1. Finish: List annotations → Export → Send the copy
2. Checkpoint: Export periodically during long sessions

**Best practices:** The output path resolves relative to the configured document directory.`

	AnnotatorServerInfoDescription = `Get server status, open document state, and tool usage guidance.

**When to use:** Session start, debugging, or whenever you need to know what is currently loaded and how many annotations exist.

**Why it's useful:** Reports the configured document directory, the open document and its page count, current annotation counts, and a summary of every available tool.

**Examples:**
• Orientation: "What document is open and what can I do here?"
• Health check: "Is the annotator responding and configured correctly?"

**Common workflows:**
1. Session Start: Server info → Open document → Annotate

**Best practices:** Run this first when resuming a session to see whether a document is still loaded.`
)

// ToolDescriptions maps tool names to their comprehensive descriptions
var ToolDescriptions = map[string]string{
	"annotator_open_document":     AnnotatorOpenDocumentDescription,
	"annotator_add_stroke":        AnnotatorAddStrokeDescription,
	"annotator_erase":             AnnotatorEraseDescription,
	"annotator_add_text":          AnnotatorAddTextDescription,
	"annotator_update_text":       AnnotatorUpdateTextDescription,
	"annotator_move_annotation":   AnnotatorMoveAnnotationDescription,
	"annotator_remove_annotation": AnnotatorRemoveAnnotationDescription,
	"annotator_list_annotations":  AnnotatorListAnnotationsDescription,
	"annotator_hit_test":          AnnotatorHitTestDescription,
	"annotator_page_insert":       AnnotatorPageInsertDescription,
	"annotator_page_remove":       AnnotatorPageRemoveDescription,
	"annotator_page_move":         AnnotatorPageMoveDescription,
	"annotator_page_rotate":       AnnotatorPageRotateDescription,
	"annotator_export":            AnnotatorExportDescription,
	"annotator_server_info":       AnnotatorServerInfoDescription,
}

// GetToolDescription returns the comprehensive description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns a list of all available tool names
func GetAllToolNames() []string {
	var names []string
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	return names
}
