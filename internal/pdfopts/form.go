package pdfopts

import (
	"errors"
	"strconv"

	"github.com/charmbracelet/huh"
)

// FormPrompter edits the dialog values in an interactive terminal form
type FormPrompter struct {
	Accessible bool
}

func (f *FormPrompter) Prompt(d *Dialog) (bool, error) {
	paper := d.PaperSize()
	orientation := d.Orientation()
	grid := d.GridSize()
	showFilename := d.ShowDesignFilename()
	showScale := d.ShowScale()
	showScaleMsg := d.ShowScaleMsg()
	showGrid := d.ShowGrid()
	save := true

	paperOptions := make([]huh.Option[PaperSize], len(PaperSizes))
	for i, p := range PaperSizes {
		paperOptions[i] = huh.NewOption(p.String(), p)
	}
	orientationOptions := make([]huh.Option[Orientation], len(Orientations))
	for i, o := range Orientations {
		orientationOptions[i] = huh.NewOption(o.String(), o)
	}
	gridOptions := make([]huh.Option[float64], len(GridSizes))
	for i, g := range GridSizes {
		gridOptions[i] = huh.NewOption(strconv.FormatFloat(g, 'f', -1, 64)+" mm", g)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[PaperSize]().Title("Paper size").Options(paperOptions...).Value(&paper),
			huh.NewSelect[Orientation]().Title("Orientation").Options(orientationOptions...).Value(&orientation),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("Show design filename?").Value(&showFilename),
			huh.NewConfirm().Title("Show scale?").Value(&showScale),
			huh.NewConfirm().Title("Show scale message?").Value(&showScaleMsg),
			huh.NewConfirm().Title("Show grid?").Value(&showGrid),
			huh.NewSelect[float64]().Title("Grid size").Options(gridOptions...).Value(&grid),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("Save settings?").Affirmative("Save").Negative("Cancel").Value(&save),
		),
	).WithAccessible(f.Accessible)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	if !save {
		return false, nil
	}

	d.SetPaperSize(paper)
	d.SetOrientation(orientation)
	d.SetShowDesignFilename(showFilename)
	d.SetShowScale(showScale)
	d.SetShowScaleMsg(showScaleMsg)
	d.SetShowGrid(showGrid)
	d.SetGridSize(grid)
	return true, nil
}
