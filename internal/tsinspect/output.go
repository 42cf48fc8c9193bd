package tsinspect

import (
	"fmt"
	"io"
)

func logPCR(w io.Writer, packet int64, pid uint16, pcr clockReference, discontinuity bool) {
	fmt.Fprintf(w, "PCR packet, packet No. %d, PID = 0x%x, PCR_base = hi:0x%X lo:0x%X, PCR_ext = 0x%X, discontinuity: %t\n",
		packet, pid, pcr.baseHi, pcr.baseLo, pcr.extension, discontinuity)
}

func logPESStart(w io.Writer, packet int64, pid uint16, info pesPacketInfo) {
	fmt.Fprintf(w, "PES start, packet No. %d, PID = 0x%x, stream_ID = 0x%X, PTS_MSB24 = 0x%x, PTS = hi:0x%X lo:0x%X",
		packet, pid, info.streamID, info.pts.msb24(), info.pts.hi, info.pts.lo)
	if info.hasDTS {
		fmt.Fprintf(w, ", DTS = hi:0x%X lo:0x%X", info.dts.hi, info.dts.lo)
	}
	fmt.Fprintln(w)
}

func logAccessUnit(w io.Writer, packet int64, pid uint16, streamID uint32, au accessUnitType) {
	fmt.Fprintf(w, "packet No. %d, ES PID = 0x%X, stream_ID = 0x%X, AU_type = %s\n",
		packet, pid, streamID, au)
}

func logDescriptors(w io.Writer, descriptors []descriptorEntry) {
	for _, d := range descriptors {
		fmt.Fprintf(w, "descriptor_tag = %d, descriptor_length = %d\n", d.tag, d.length)
	}
}

func logPAT(w io.Writer, packet int64, pid uint16, sec patSection) {
	fmt.Fprintf(w, "PAT packet, packet No. %d, PID = 0x%X\n", packet, pid)
	fmt.Fprintln(w, "------- PAT Information -------")
	fmt.Fprintf(w, "section_length = %d\n", sec.sectionLength)
	fmt.Fprintf(w, "section_number = %d, last_section_number = %d\n", sec.sectionNumber, sec.lastSectionNumber)
	for _, entry := range sec.entries {
		fmt.Fprintf(w, "program_number = 0x%X\n", entry.programNumber)
		if entry.programNumber == 0 {
			fmt.Fprintf(w, "network_PID = 0x%X\n", entry.pid)
		} else {
			fmt.Fprintf(w, "program_map_PID = 0x%X\n", entry.pid)
		}
	}
	fmt.Fprintln(w)
}

func logPMT(w io.Writer, packet int64, pid uint16, sec pmtSection) {
	fmt.Fprintf(w, "PMT packet, packet No. %d, PID = 0x%X\n", packet, pid)
	fmt.Fprintln(w, "------- PMT Information -------")
	fmt.Fprintf(w, "section_length = %d\n", sec.sectionLength)
	fmt.Fprintf(w, "program_number = %d\n", sec.programNumber)
	fmt.Fprintf(w, "section_number = %d, last_section_number = %d\n", sec.sectionNumber, sec.lastSectionNumber)
	fmt.Fprintf(w, "PCR_PID = 0x%X\n", sec.pcrPID)
	fmt.Fprintf(w, "program_info_length = %d\n", sec.programInfoLength)
	logDescriptors(w, sec.programDescriptors)
	for _, es := range sec.streams {
		fmt.Fprintf(w, "stream_type = 0x%X, elementary_PID = 0x%X, ES_info_length = %d\n",
			es.streamType, es.elementaryPID, es.infoLength)
		logDescriptors(w, es.descriptors)
	}
	fmt.Fprintln(w)
}

func logSIT(w io.Writer, packet int64, pid uint16, sec sitSection) {
	fmt.Fprintf(w, "SIT packet, packet No. %d, PID = 0x%X\n", packet, pid)
	fmt.Fprintln(w, "------- SIT Information -------")
	fmt.Fprintf(w, "section_length = %d\n", sec.sectionLength)
	fmt.Fprintf(w, "section_number = %d, last_section_number = %d\n", sec.sectionNumber, sec.lastSectionNumber)
	fmt.Fprintf(w, "transmission_info_loop_length = %d\n", sec.transmissionLoopLength)
	logDescriptors(w, sec.transmissionDescriptors)
	for _, svc := range sec.services {
		fmt.Fprintf(w, "service_id = %d, service_loop_length = %d\n", svc.serviceID, svc.loopLength)
		logDescriptors(w, svc.descriptors)
	}
	fmt.Fprintln(w)
}
