package recipe

// FSD50K returns the siren groups for FSD50K ground-truth files, whose
// labels column holds comma-separated class names.
func FSD50K() *Recipe {
	return &Recipe{
		SegmentSuffix: ".csv",
		Positives: Group{
			Name:   "FSD_positives",
			Labels: []string{"Siren"},
		},
		Negatives: Group{
			Name: "FSD_negatives",
			Labels: []string{
				"Car", "Car_passing_by", "Race_car_and_auto_racing",
				"Vehicle_horn_and_car_horn_and_honking",
				"Accelerating_and_revving_and_vroom", "Bus",
				"Motor_vehicle_(road)", "Motorcycle", "Truck", "Bicycle",
				"Rail_transport", "Train", "Subway_and_metro_and_underground",
				"Skateboard", "Traffic_noise_and_roadway_noise",
				"Bicycle_bell", "Alarm", "Telephone", "Doorbell", "Ringtone",
				"Speech", "Music", "Engine", "Engine_starting", "Idling",
			},
		},
	}
}
