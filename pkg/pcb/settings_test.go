package pcb

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		edit     func(*DesignSettings)
		wantErrs []string
	}{
		{
			name: "defaults are valid",
			edit: func(*DesignSettings) {},
		},
		{
			name: "track below minimum",
			edit: func(ds *DesignSettings) {
				ds.SetNetClass(NetClass{Name: "Thin", Clearance: 0.2, TrackWidth: 0.1, ViaDiameter: 0.8, ViaDrill: 0.4, MicroViaDiameter: 0.3, MicroViaDrill: 0.1})
			},
			wantErrs: []string{"Thin: track width"},
		},
		{
			name: "drill not smaller than diameter",
			edit: func(ds *DesignSettings) {
				ds.SetNetClass(NetClass{Name: "Fat", TrackWidth: 0.3, ViaDiameter: 0.6, ViaDrill: 0.6, MicroViaDiameter: 0.3, MicroViaDrill: 0.3})
			},
			wantErrs: []string{"Fat: via drill 0.6 >= via diameter", "Fat: micro via drill 0.3 >= micro via diameter"},
		},
		{
			name: "raised minimums",
			edit: func(ds *DesignSettings) {
				ds.ViaMinSize = 1
				ds.ViaMinDrill = 0.5
				ds.MicroViaMinSize = 0.5
				ds.MicroViaMinDrill = 0.2
			},
			wantErrs: []string{
				"Default: via diameter 0.8 < min via diameter 1",
				"Default: via drill 0.4 < min via drill 0.5",
				"Default: micro via diameter 0.3 < min micro via diameter 0.5",
				"Default: micro via drill 0.1 < min micro via drill 0.2",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := NewDesignSettings()
			tt.edit(ds)
			err := ds.Validate()
			if len(tt.wantErrs) == 0 {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want errors")
			}
			var joined interface{ Unwrap() []error }
			if !errors.As(err, &joined) || len(joined.Unwrap()) != len(tt.wantErrs) {
				t.Fatalf("Validate() = %v, want %d errors", err, len(tt.wantErrs))
			}
			for _, want := range tt.wantErrs {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("Validate() = %q, missing %q", err, want)
				}
			}
		})
	}
}

func TestNetClassAssignment(t *testing.T) {
	ds := NewDesignSettings()
	if err := ds.AssignNet(1, "Missing"); err == nil {
		t.Error("AssignNet to unknown class succeeded")
	}

	ds.SetNetClass(NetClass{Name: "HV", Clearance: 1})
	if err := ds.AssignNet(1, "HV"); err != nil {
		t.Fatal(err)
	}
	if got := ds.NetClassFor(1).Name; got != "HV" {
		t.Errorf("NetClassFor(1) = %q, want HV", got)
	}
	if got := ds.NetClassFor(2).Name; got != DefaultNetClassName {
		t.Errorf("NetClassFor(2) = %q, want default", got)
	}

	classes := ds.NetClasses()
	if len(classes) != 2 || classes[0].Name != DefaultNetClassName {
		t.Errorf("NetClasses() = %v", classes)
	}

	if err := ds.RemoveNetClass(DefaultNetClassName); err == nil {
		t.Error("removing the default class succeeded")
	}
	if err := ds.RemoveNetClass("HV"); err != nil {
		t.Fatal(err)
	}
	if got := ds.NetClassFor(1).Name; got != DefaultNetClassName {
		t.Errorf("after removal NetClassFor(1) = %q", got)
	}
}

func TestSegmentClearance(t *testing.T) {
	ds := NewDesignSettings()
	ds.SetNetClass(NetClass{Name: "HV", Clearance: 1})
	ds.AssignNet(7, "HV")

	a := track(1, 0, 0, 1, 0)
	b := track(7, 0, 0, 1, 0)
	if got := a.Clearance(ds, nil); got != 0.2 {
		t.Errorf("Clearance() = %v, want 0.2", got)
	}
	if got := a.Clearance(ds, &b); got != 1 {
		t.Errorf("Clearance(other) = %v, want 1", got)
	}
}

func TestDesignSettingsZeroValue(t *testing.T) {
	var ds DesignSettings
	if got := ds.NetClassFor(7).Name; got != DefaultNetClassName {
		t.Errorf("NetClassFor(7) = %q, want default", got)
	}

	ds = DesignSettings{}
	ds.SetNetClass(NetClass{Name: "HV", Clearance: 1})
	if err := ds.AssignNet(3, "HV"); err != nil {
		t.Fatalf("AssignNet() error: %v", err)
	}
	if got := ds.NetClassFor(3).Clearance; got != 1 {
		t.Errorf("NetClassFor(3).Clearance = %v, want 1", got)
	}
	if got := len(ds.NetClasses()); got != 2 {
		t.Errorf("NetClasses() has %d classes, want default and HV", got)
	}
}
